package models

import "time"

// InsightKind selects which report the advisor generates
type InsightKind string

const (
	InsightInventory InsightKind = "inventory"
	InsightSales     InsightKind = "sales"
)

// ValidInsightKind reports whether s names a known report kind
func ValidInsightKind(s string) bool {
	switch InsightKind(s) {
	case InsightInventory, InsightSales:
		return true
	}
	return false
}

// InsightReport is a generated textual report plus the stats it was built
// from, so callers can show the numbers next to the narrative.
type InsightReport struct {
	Kind        InsightKind    `json:"kind"`
	Text        string         `json:"text"`
	Stats       map[string]any `json:"stats"`
	GeneratedAt time.Time      `json:"generated_at"`
	FromCache   bool           `json:"from_cache"`
}
