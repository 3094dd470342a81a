// Package nlp classifies inbound debtor messages with a fixed Spanish
// lexicon. No external NLP dependency; the heuristics are deterministic so
// escalation decisions stay reproducible.
package nlp

import "strings"

// Intents, in priority order (highest first). A message with several
// trigger words resolves to the highest-priority intent.
const (
	IntentDiscountRequest    = "discount_request"
	IntentInstallmentRequest = "installment_request"
	IntentTimeRequest        = "time_request"
	IntentHumanRequest       = "human_request"
	IntentAgreement          = "agreement"
	IntentInquiry            = "inquiry"
)

// Sentiments with their fixed scores.
const (
	SentimentNegative = "negative"
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"

	scoreNegative = 0.2
	scorePositive = 0.8
	scoreNeutral  = 0.5
)

// Keyword flags.
const (
	KeywordDiscount     = "discount"
	KeywordInstallments = "installments"
	KeywordTime         = "time"
	KeywordHuman        = "human"
	KeywordPayment      = "payment"
	KeywordDistress     = "distress"
	KeywordAgreement    = "agreement"
)

// Analysis is the classification of a single inbound message.
type Analysis struct {
	Keywords       []string `json:"keywords"`
	Sentiment      string   `json:"sentiment"`
	SentimentScore float64  `json:"sentiment_score"`
	Intent         string   `json:"intent"`
	Complexity     string   `json:"complexity"`
}

// HasKeyword reports whether the given flag was detected.
func (a *Analysis) HasKeyword(flag string) bool {
	for _, k := range a.Keywords {
		if k == flag {
			return true
		}
	}
	return false
}

var lexicon = map[string][]string{
	KeywordDiscount:     {"descuento", "rebaja", "quita", "reducción"},
	KeywordInstallments: {"cuotas", "mensualidades", "parcialidades", "pagos parciales"},
	KeywordTime:         {"tiempo", "meses", " mes ", "prórroga", "más adelante", "extensión"},
	KeywordHuman:        {"persona", "humano", "agente", "representante", "asesor", "alguien real"},
	KeywordPayment:      {"pagar", "pago", "transferencia", "depósito", "abonar"},
	KeywordDistress:     {"no puedo pagar", "no tengo dinero", "desempleado", "sin trabajo", "crisis", "no me alcanza", "situación difícil"},
	KeywordAgreement:    {"de acuerdo", "acepto", "gracias", "perfecto", "está bien", "me parece bien", "trato hecho"},
}

// Analyze classifies one inbound debtor message. It is a pure function:
// empty input yields intent=inquiry with neutral sentiment.
func Analyze(message string) Analysis {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return Analysis{
			Keywords:       []string{},
			Sentiment:      SentimentNeutral,
			SentimentScore: scoreNeutral,
			Intent:         IntentInquiry,
			Complexity:     "low",
		}
	}

	keywords := detectKeywords(text)
	sentiment, score := detectSentiment(keywords)

	return Analysis{
		Keywords:       keywords,
		Sentiment:      sentiment,
		SentimentScore: score,
		Intent:         detectIntent(keywords),
		Complexity:     complexity(text),
	}
}

func detectKeywords(text string) []string {
	// Fixed iteration order keeps Keywords stable across calls.
	flags := []string{
		KeywordDiscount, KeywordInstallments, KeywordTime,
		KeywordHuman, KeywordPayment, KeywordDistress, KeywordAgreement,
	}

	found := []string{}
	for _, flag := range flags {
		for _, marker := range lexicon[flag] {
			if strings.Contains(text, marker) {
				found = append(found, flag)
				break
			}
		}
	}
	return found
}

// detectSentiment applies the three-bucket heuristic. Distress is checked
// before agreement: "gracias, pero no puedo pagar" is negative.
func detectSentiment(keywords []string) (string, float64) {
	for _, k := range keywords {
		if k == KeywordDistress {
			return SentimentNegative, scoreNegative
		}
	}
	for _, k := range keywords {
		if k == KeywordAgreement {
			return SentimentPositive, scorePositive
		}
	}
	return SentimentNeutral, scoreNeutral
}

// detectIntent resolves the intent by first match in priority order.
// The order is load-bearing: messages often contain several trigger words
// and downstream escalation depends on this exact resolution.
func detectIntent(keywords []string) string {
	has := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		has[k] = true
	}

	switch {
	case has[KeywordDiscount]:
		return IntentDiscountRequest
	case has[KeywordInstallments]:
		return IntentInstallmentRequest
	case has[KeywordTime]:
		return IntentTimeRequest
	case has[KeywordHuman]:
		return IntentHumanRequest
	case has[KeywordAgreement]:
		return IntentAgreement
	default:
		return IntentInquiry
	}
}

// complexity buckets by word count. Only a minor confidence signal, never
// used for control flow.
func complexity(text string) string {
	words := len(strings.Fields(text))
	switch {
	case words < 10:
		return "low"
	case words < 25:
		return "medium"
	default:
		return "high"
	}
}
