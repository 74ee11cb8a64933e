package models

// AnalyticsReport groups the caller-visible deal set four ways. Categories
// with no deals are simply absent from the maps, there is no zero-fill.
type AnalyticsReport struct {
	StatusCounts map[string]int `json:"status_counts"`
	StateCounts  map[string]int `json:"state_counts"`
	UserCounts   map[string]int `json:"user_counts"`   // keyed by owner display name
	DealsByMonth map[string]int `json:"deals_by_month"` // keyed by creation month, "2006-01", UTC
}
