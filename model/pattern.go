package model

// Pattern is a cluster of sufficiently similar symbolic sequences across
// sessions. Patterns live in memory only; a pattern that never reaches the
// occurrence threshold is simply discarded.
type Pattern struct {
	Sessions    []string `json:"sessions"`
	Template    []string `json:"template"`
	Similarity  float64  `json:"similarity"`
	Occurrences int      `json:"occurrences"`
	Confidence  float64  `json:"confidence"`
}
