package search

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/filter"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/request"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/result"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/similarity"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/metrics"
)

// Suggestion limits.
const (
	DefaultSuggestLimit = 10
	MinSuggestQuery     = 2
	suggestThreshold    = 70
)

// Service answers catalog searches: structural fetch, then fuzzy ranking.
type Service struct {
	parts      PartFetcher
	ranker     *Ranker
	logger     *zap.Logger
	fetchLimit int
}

// New creates a search service. A nil ranker uses the default partial-ratio scorer.
func New(parts PartFetcher, ranker *Ranker, logger *zap.Logger) *Service {
	if ranker == nil {
		ranker = NewRanker(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{parts: parts, ranker: ranker, logger: logger, fetchLimit: request.FetchLimit}
}

// WithFetchLimit overrides how many candidates are pulled from the store per call.
func (s *Service) WithFetchLimit(n int) *Service {
	if n > 0 {
		s.fetchLimit = n
	}
	return s
}

// Search fetches candidates matching the structural filters and ranks them
// against the query. It never returns an error: a store failure yields an
// empty outcome, a ranking failure yields the unranked candidates capped at
// the limit. Both are tagged in Outcome.Status and marked on the context.
func (s *Service) Search(ctx context.Context, req *request.Request) result.Outcome {
	candidates, err := s.parts.Find(ctx, req.Filters(), s.fetchLimit)
	if err != nil {
		s.logger.Warn("Catalog fetch failed, returning empty result",
			zap.String("query", req.Query()),
			zap.Error(err),
		)
		domain.DegradationFromContext(ctx).Mark(string(result.StatusStoreUnavailable))
		metrics.SearchRequestsTotal.WithLabelValues(string(result.StatusStoreUnavailable)).Inc()
		return result.Outcome{Parts: []part.Part{}, Status: result.StatusStoreUnavailable}
	}

	metrics.RankingCandidates.Observe(float64(len(candidates)))

	start := time.Now()
	ranked, err := s.ranker.Rank(candidates, req.Query(), req.Limit())
	metrics.RankingDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.Warn("Ranking failed, returning unranked candidates",
			zap.String("query", req.Query()),
			zap.Int("candidates", len(candidates)),
			zap.Error(err),
		)
		domain.DegradationFromContext(ctx).Mark(string(result.StatusRankingDegraded))
		metrics.SearchRequestsTotal.WithLabelValues(string(result.StatusRankingDegraded)).Inc()
		return result.Outcome{Parts: truncate(candidates, req.Limit()), Status: result.StatusRankingDegraded}
	}

	metrics.SearchRequestsTotal.WithLabelValues(string(result.StatusOK)).Inc()
	return result.Outcome{
		Parts:  ranked,
		Status: result.StatusOK,
		Ranked: similarity.Normalize(req.Query()) != "",
	}
}

// Suggest returns completions drawn from distinct part names, brands and
// models scoring at least 70 against the query, best first. Queries shorter
// than two characters and store failures yield no suggestions.
func (s *Service) Suggest(ctx context.Context, query string, limit int) []result.Suggestion {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinSuggestQuery {
		return []result.Suggestion{}
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	parts, err := s.parts.Find(ctx, filter.Expression{}, s.fetchLimit)
	if err != nil {
		s.logger.Warn("Catalog fetch failed, returning no suggestions", zap.Error(err))
		domain.DegradationFromContext(ctx).Mark(string(result.StatusStoreUnavailable))
		return []result.Suggestion{}
	}

	type scored struct {
		s     result.Suggestion
		score int
	}

	seen := make(map[string]struct{})
	var out []scored
	add := func(text string, typ result.SuggestionType, category string) {
		text = strings.TrimSpace(text)
		key := strings.ToLower(text)
		if text == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		if score := s.ranker.score(query, text); score >= suggestThreshold {
			out = append(out, scored{
				s:     result.Suggestion{Text: text, Type: typ, Category: category},
				score: score,
			})
		}
	}

	for i := range parts {
		p := &parts[i]
		add(p.Name(), result.SuggestionPart, p.Category())
		add(p.Brand(), result.SuggestionBrand, "Brand")
		add(p.Model(), result.SuggestionModel, "Model")
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })

	if len(out) > limit {
		out = out[:limit]
	}
	suggestions := make([]result.Suggestion, len(out))
	for i, o := range out {
		suggestions[i] = o.s
	}
	return suggestions
}
