package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the cache backend is failing; the catalog still answers.
	Degraded Status = "degraded"
	// Unhealthy indicates the catalog store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names in Report.Checks.
const (
	CheckCatalog = "catalog"
	CheckCache   = "cache"
)

const checkTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status       Status
	Checks       map[string]CheckResult
	CacheBackend string
}

// Service coordinates health checks.
type Service struct {
	catalog CatalogPinger
	cache   CacheReporter
}

// New creates a Service. cache can be nil.
func New(catalog CatalogPinger, cache CacheReporter) *Service {
	return &Service{catalog: catalog, cache: cache}
}

// Check runs health checks against all components concurrently.
func (s *Service) Check(ctx context.Context) Report {
	var (
		mu     sync.Mutex
		checks = make(map[string]CheckResult)
		report Report
	)
	record := func(name string, ok bool) {
		mu.Lock()
		defer mu.Unlock()
		if ok {
			checks[name] = CheckOK
		} else {
			checks[name] = CheckError
		}
	}

	var g errgroup.Group
	g.Go(func() error {
		pingCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		defer cancel()
		record(CheckCatalog, s.catalog.Ping(pingCtx) == nil)
		return nil
	})
	if s.cache != nil {
		g.Go(func() error {
			st := s.cache.Status()
			mu.Lock()
			report.CacheBackend = st.Backend
			mu.Unlock()
			record(CheckCache, st.Healthy)
			return nil
		})
	}
	_ = g.Wait()

	report.Checks = checks
	switch {
	case checks[CheckCatalog] == CheckError:
		report.Status = Unhealthy
	case checks[CheckCache] == CheckError:
		report.Status = Degraded
	default:
		report.Status = Healthy
	}
	return report
}
