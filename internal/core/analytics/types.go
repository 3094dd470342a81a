// Package analytics records terminal negotiation outcomes and computes
// rolling read-side metrics over the append-only event log. Everything
// here is idempotent and safe to recompute from scratch.
package analytics

import (
	"time"

	"github.com/google/uuid"
)

// TrackPayload is the event detail attached by writers.
type TrackPayload struct {
	ProposalID      *uuid.UUID
	Outcome         *string
	DurationMinutes int
	AIMessages      int
	Metadata        map[string]interface{}
}

// GeneralMetrics is the cached per-company rollup.
type GeneralMetrics struct {
	ActiveNegotiations int     `json:"active_negotiations"`
	TotalNegotiations  int     `json:"total_negotiations"`
	AISuccessRate      int     `json:"ai_success_rate"`
	Escalations        int     `json:"escalations"`
	AvgResolutionTime  float64 `json:"avg_resolution_time_minutes"`

	// Placeholder heuristic over outcome counts; there is no real user
	// feedback signal behind it.
	CustomerSatisfaction int `json:"customer_satisfaction"`
}

// Trend classifications for the 7-vs-previous-7-day window.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// TrendReport compares the current 7-day success rate with the previous
// 7-day window.
type TrendReport struct {
	CurrentRate  int    `json:"current_rate"`
	PreviousRate int    `json:"previous_rate"`
	Trend        string `json:"trend"`
}

// DateRange is a time window filter for aggregation queries.
type DateRange struct {
	Start time.Time
	End   time.Time
	Field string
}

// AggregateQuery describes a generic aggregation over one table.
type AggregateQuery struct {
	Table      string
	GroupBy    []string
	Aggregates map[string]string // alias -> expression, e.g. {"total": "COUNT(*)"}
	Filters    map[string]interface{}
	DateRange  *DateRange
	OrderBy    []string
	Limit      int
}
