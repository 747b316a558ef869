package models

// Game represents a single upcoming release as reported by the catalog API.
// Fields are carried over verbatim from the API response and may be empty
// when the source omits them; display defaults live in the notifier.
type Game struct {
	ID        int
	Name      string
	Released  string   // YYYY-MM-DD, empty when the date is not announced
	Platforms []string // platform display names, may be empty
}
