package analytics

import "math"

// A rate change inside ±5 points reads as stable.
const trendThreshold = 5

// SuccessRate returns successful/total as a rounded integer percentage.
// Zero totals yield 0.
func SuccessRate(successful, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(successful) / float64(total) * 100))
}

// ClassifyTrend compares the current window's success rate against the
// previous window's.
func ClassifyTrend(currentRate, previousRate int) string {
	delta := currentRate - previousRate
	switch {
	case delta > trendThreshold:
		return TrendImproving
	case delta < -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// Placeholder satisfaction weights per outcome. There is no measured user
// feedback behind these numbers; do not read meaning into them without
// product sign-off.
const (
	satisfactionAgreement = 90
	satisfactionEscalated = 60
	satisfactionAbandoned = 30
	satisfactionBaseline  = 70
)

// SatisfactionScore derives the placeholder satisfaction heuristic from
// outcome counts.
func SatisfactionScore(agreements, escalations, abandonments int64) int {
	total := agreements + escalations + abandonments
	if total == 0 {
		return satisfactionBaseline
	}
	weighted := agreements*satisfactionAgreement +
		escalations*satisfactionEscalated +
		abandonments*satisfactionAbandoned
	return int(math.Round(float64(weighted) / float64(total)))
}
