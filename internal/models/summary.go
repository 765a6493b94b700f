package models

// Summary is the narrative overview returned alongside a snapshot
type Summary struct {
	Headline string   `json:"headline"`
	Bullets  []string `json:"bullets"`
	Note     string   `json:"note"`
}

// SimulationResult is the answer to a free-text scenario question
type SimulationResult struct {
	Heading string   `json:"heading"`
	Lines   []string `json:"lines"`
	Enabled bool     `json:"enabled"`
}
