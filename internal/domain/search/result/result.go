package result

import "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"

// Status tags how a search was answered.
type Status string

const (
	// StatusOK means candidates were fetched and, for a non-empty query, ranked.
	StatusOK Status = "ok"
	// StatusStoreUnavailable means the catalog fetch failed and Parts is empty.
	StatusStoreUnavailable Status = "store_unavailable"
	// StatusRankingDegraded means ranking failed and Parts is the unranked candidate list.
	StatusRankingDegraded Status = "ranking_degraded"
)

// Outcome is the internal search result. Callers outside the core only see Parts.
type Outcome struct {
	Parts  []part.Part
	Status Status
	// Ranked is true when Parts is ordered by relevance rather than store order.
	Ranked bool
}

// Degraded reports whether the outcome differs from a normal answer.
func (o Outcome) Degraded() bool { return o.Status != StatusOK }

// SuggestionType names the catalog field a suggestion was drawn from.
type SuggestionType string

// Suggestion types.
const (
	SuggestionPart  SuggestionType = "part"
	SuggestionBrand SuggestionType = "brand"
	SuggestionModel SuggestionType = "model"
)

// Suggestion is a search-as-you-type completion.
type Suggestion struct {
	Text     string
	Type     SuggestionType
	Category string
}
