package search

import (
	"fmt"
	"sort"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/similarity"
)

// Field weights for fuzzy ranking. A record's score is the max of its weighted
// field scores, so one strong field match outranks several weak ones.
const (
	weightName     = 1.5
	weightBrand    = 1.2
	weightModel    = 1.1
	weightCategory = 1.0
	weightFullText = 0.8

	// minScore is the inclusion threshold on the weighted score.
	minScore = 60.0
)

// ScoreFunc returns a [0,100] similarity between a normalized query and a candidate.
type ScoreFunc func(query, candidate string) int

// Ranker orders parts by weighted fuzzy similarity to a query.
type Ranker struct {
	score ScoreFunc
}

// NewRanker creates a ranker. A nil score uses similarity.PartialRatio.
func NewRanker(score ScoreFunc) *Ranker {
	if score == nil {
		score = similarity.PartialRatio
	}
	return &Ranker{score: score}
}

// Rank filters parts scoring below the threshold and sorts the rest by
// descending score, keeping input order for ties. At most limit parts are returned.
// An empty query returns the input truncated to limit, unranked.
// An incomplete record or any panic raised while scoring is returned as an
// error; the caller decides how to degrade.
func (r *Ranker) Rank(parts []part.Part, query string, limit int) (ranked []part.Part, err error) {
	q := similarity.Normalize(query)
	if q == "" {
		return truncate(parts, limit), nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			ranked = nil
			err = fmt.Errorf("score parts: %v", rec)
		}
	}()

	type scored struct {
		p     part.Part
		score float64
	}

	candidates := make([]scored, 0, len(parts))
	for i := range parts {
		if err := parts[i].Complete(); err != nil {
			return nil, fmt.Errorf("score parts: %w", err)
		}
		s := r.scorePart(&parts[i], q)
		if s >= minScore {
			candidates = append(candidates, scored{p: parts[i], score: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	ranked = make([]part.Part, len(candidates))
	for i, c := range candidates {
		ranked[i] = c.p
	}
	return ranked, nil
}

// scorePart returns the max weighted field score for one part.
func (r *Ranker) scorePart(p *part.Part, q string) float64 {
	fields := [...]struct {
		text   string
		weight float64
	}{
		{p.Name(), weightName},
		{p.Brand(), weightBrand},
		{p.Model(), weightModel},
		{p.Category(), weightCategory},
		{p.SearchText(), weightFullText},
	}

	best := 0.0
	for _, f := range fields {
		if s := float64(r.score(q, f.text)) * f.weight; s > best {
			best = s
		}
	}
	return best
}

func truncate(parts []part.Part, limit int) []part.Part {
	if limit >= 0 && len(parts) > limit {
		return parts[:limit]
	}
	return parts
}
