package api

import "fmt"

// SearchResult is one entry of the stubbed search feature.
type SearchResult struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Search is a stub returning canned data. Wiring a real search backend is
// out of scope; the shape matches what a future integration would return.
func Search(query string) []SearchResult {
	return []SearchResult{
		{
			ID:      1,
			Title:   fmt.Sprintf("Results for %q", query),
			Content: fmt.Sprintf("Here is what was found about %q. This feature can be connected to an external search API.", query),
		},
		{
			ID:      2,
			Title:   "Additional context",
			Content: "For a complete implementation, integrate a search API or your own database.",
		},
	}
}
