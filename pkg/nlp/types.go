package nlp

// Intent is one row of a declarative intent table: an identifier and the
// trigger phrases that vote for it.
type Intent struct {
	ID       string   `json:"id"`
	Patterns []string `json:"patterns"`
}

// Table is evaluated in order. Order only matters for ties.
type Table []Intent

type MatchResult struct {
	Pattern string `json:"pattern"`
	Score   int    `json:"score"`
}

type IntentResult struct {
	Intent  string        `json:"intent"`
	Score   int           `json:"score"`
	Matches []MatchResult `json:"matches"`
}

// KeywordSet maps a set of phrases to the key they refer to.
type KeywordSet struct {
	Key      string   `json:"key"`
	Keywords []string `json:"keywords"`
}
