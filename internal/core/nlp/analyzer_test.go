package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeEmptyMessage(t *testing.T) {
	a := Analyze("   ")

	assert.Equal(t, IntentInquiry, a.Intent)
	assert.Equal(t, SentimentNeutral, a.Sentiment)
	assert.Equal(t, 0.5, a.SentimentScore)
	assert.Equal(t, "low", a.Complexity)
	assert.Empty(t, a.Keywords)
}

func TestAnalyzeIntents(t *testing.T) {
	tests := []struct {
		name    string
		message string
		intent  string
	}{
		{"discount request", "quiero un 25% de descuento", IntentDiscountRequest},
		{"installment request", "¿puedo pagar en cuotas?", IntentInstallmentRequest},
		{"time request", "necesito más tiempo, unos 6 meses", IntentTimeRequest},
		{"human request", "Quiero hablar con una persona", IntentHumanRequest},
		{"agreement", "perfecto, acepto la oferta", IntentAgreement},
		{"inquiry", "¿cuál es mi saldo actual?", IntentInquiry},
		{"discount wins over installments", "descuento y cuotas por favor", IntentDiscountRequest},
		{"installments win over time", "mensualidades en 6 meses", IntentInstallmentRequest},
		{"time wins over human", "más tiempo o pásame con un agente", IntentTimeRequest},
		{"human wins over agreement", "gracias pero quiero hablar con un humano", IntentHumanRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(tt.message)
			assert.Equal(t, tt.intent, a.Intent)
		})
	}
}

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		sentiment string
		score     float64
	}{
		{"distress is negative", "no puedo pagar, estoy desempleado", SentimentNegative, 0.2},
		{"agreement is positive", "de acuerdo, me parece bien", SentimentPositive, 0.8},
		{"plain question is neutral", "¿cuánto debo?", SentimentNeutral, 0.5},
		{"distress beats agreement", "gracias, pero no puedo pagar", SentimentNegative, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(tt.message)
			assert.Equal(t, tt.sentiment, a.Sentiment)
			assert.Equal(t, tt.score, a.SentimentScore)
		})
	}
}

func TestAnalyzeKeywords(t *testing.T) {
	a := Analyze("Quiero un descuento y pagar en cuotas, no tengo dinero")

	assert.True(t, a.HasKeyword(KeywordDiscount))
	assert.True(t, a.HasKeyword(KeywordInstallments))
	assert.True(t, a.HasKeyword(KeywordPayment))
	assert.True(t, a.HasKeyword(KeywordDistress))
	assert.False(t, a.HasKeyword(KeywordHuman))
}

func TestAnalyzeInstallmentsDoNotFlagTime(t *testing.T) {
	// "mensualidades" must not trip the time lexicon.
	a := Analyze("quiero pagar en mensualidades")

	assert.True(t, a.HasKeyword(KeywordInstallments))
	assert.False(t, a.HasKeyword(KeywordTime))
}

func TestAnalyzeComplexity(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		complexity string
	}{
		{"short", "hola", "low"},
		{"medium", "hola, quisiera saber si es posible revisar el monto total de mi deuda pendiente", "medium"},
		{"long", "hola, quisiera saber si es posible revisar el monto total de mi deuda pendiente porque el mes pasado tuve varios gastos imprevistos y la verdad me resulta muy complicado cubrir la cantidad completa este mes", "high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.complexity, Analyze(tt.message).Complexity)
		})
	}
}
