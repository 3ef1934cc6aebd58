package types

// DisplayItem is the uniform shape a ranked match is reduced to before it is
// handed to the chat-response layer, regardless of which retrieval tier
// produced the underlying record.
type DisplayItem struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Subtitle string `json:"subtitle,omitempty"`

	MatchScore  float64  `json:"match_score"`
	VectorScore *float64 `json:"vector_score"`

	ScoreBreakdown map[string]float64 `json:"score_breakdown,omitempty"`

	// Reasons are the top-scoring breakdown components rendered as
	// human-readable strings, at most three.
	Reasons []string `json:"reasons,omitempty"`

	// Source is "vector", "metadata" or "catalog".
	Source string `json:"source"`

	// Metadata is an audience-specific subset of the record's fields,
	// nil when nothing survives the allow-list.
	Metadata map[string]any `json:"metadata"`
}
