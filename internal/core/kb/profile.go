package kb

import "strings"

// Classification cutoffs for behavior derivation.
const (
	cooperativeRatio = 0.7
	resistantRatio   = 0.3

	regularRatio    = 0.8
	delinquentRatio = 0.3
)

// Fixed Spanish lexicons for communication-style detection. Accuracy is
// unvalidated; kept in one place so the detector can be replaced wholesale.
var (
	formalMarkers = []string{
		"usted", "estimado", "estimada", "cordialmente", "atentamente",
		"buenos días", "buenas tardes", "quisiera", "le agradezco",
	}
	informalMarkers = []string{
		"hola", "oye", "che", "vale", "porfa", "bro", "va que", "oki", "q onda",
	}
)

// DeriveBehavior classifies negotiation tendency and payment pattern from
// prior history. Tendency stays empty (unclassified) for mixed history or
// when there are no prior negotiations.
func DeriveBehavior(negotiations []NegotiationSummary, payments []PaymentRecord) BehaviorProfile {
	profile := BehaviorProfile{
		PaymentPattern: derivePaymentPattern(payments),
	}

	if len(negotiations) > 0 {
		agreed := 0
		for _, n := range negotiations {
			if n.Status == "agreed" {
				agreed++
			}
		}
		ratio := float64(agreed) / float64(len(negotiations))
		switch {
		case ratio > cooperativeRatio:
			profile.NegotiationTendency = TendencyCooperative
		case ratio < resistantRatio:
			profile.NegotiationTendency = TendencyResistant
		}
	}

	return profile
}

func derivePaymentPattern(payments []PaymentRecord) string {
	if len(payments) == 0 {
		return PatternIrregular
	}

	onTime := 0
	for _, p := range payments {
		if p.OnTime {
			onTime++
		}
	}
	ratio := float64(onTime) / float64(len(payments))
	switch {
	case ratio > regularRatio:
		return PatternRegular
	case ratio < delinquentRatio:
		return PatternDelinquent
	default:
		return PatternIrregular
	}
}

// DeriveRiskLevel scores overdue age plus late-payment ratio:
// daysOverdue >90/+3, >60/+2, >30/+1; late ratio ≥0.7/+3, ≥0.4/+2, ≥0.2/+1.
// Total ≥5 is high, ≥3 medium, else low.
func DeriveRiskLevel(daysOverdue int, payments []PaymentRecord) string {
	score := 0

	switch {
	case daysOverdue > 90:
		score += 3
	case daysOverdue > 60:
		score += 2
	case daysOverdue > 30:
		score += 1
	}

	if len(payments) > 0 {
		late := 0
		for _, p := range payments {
			if p.Late {
				late++
			}
		}
		ratio := float64(late) / float64(len(payments))
		switch {
		case ratio >= 0.7:
			score += 3
		case ratio >= 0.4:
			score += 2
		case ratio >= 0.2:
			score += 1
		}
	}

	switch {
	case score >= 5:
		return RiskHigh
	case score >= 3:
		return RiskMedium
	default:
		return RiskLow
	}
}

// DetectCommunicationStyle counts formal vs informal markers across the
// debtor's prior messages. Majority wins; a tie (including no markers at
// all) falls back to professional.
func DetectCommunicationStyle(messages []string) string {
	formal, informal := 0, 0
	for _, msg := range messages {
		text := strings.ToLower(msg)
		for _, m := range formalMarkers {
			if strings.Contains(text, m) {
				formal++
			}
		}
		for _, m := range informalMarkers {
			if strings.Contains(text, m) {
				informal++
			}
		}
	}

	switch {
	case formal > informal:
		return StyleFormal
	case informal > formal:
		return StyleInformal
	default:
		return StyleProfessional
	}
}
