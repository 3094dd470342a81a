package kb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func summaries(statuses ...string) []NegotiationSummary {
	out := make([]NegotiationSummary, len(statuses))
	for i, s := range statuses {
		out[i] = NegotiationSummary{Status: s}
	}
	return out
}

func payments(onTime, late int) []PaymentRecord {
	out := make([]PaymentRecord, 0, onTime+late)
	for i := 0; i < onTime; i++ {
		out = append(out, PaymentRecord{OnTime: true})
	}
	for i := 0; i < late; i++ {
		out = append(out, PaymentRecord{Late: true})
	}
	return out
}

func TestDeriveBehaviorTendency(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		tendency string
	}{
		{"all agreed is cooperative", []string{"agreed", "agreed", "agreed"}, TendencyCooperative},
		{"mostly escalated is resistant", []string{"escalated", "escalated", "escalated", "escalated", "agreed"}, TendencyResistant},
		{"mixed stays unclassified", []string{"agreed", "escalated"}, ""},
		{"no history stays unclassified", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := DeriveBehavior(summaries(tt.statuses...), nil)
			assert.Equal(t, tt.tendency, profile.NegotiationTendency)
		})
	}
}

func TestDerivePaymentPattern(t *testing.T) {
	tests := []struct {
		name    string
		onTime  int
		late    int
		pattern string
	}{
		{"no payments is irregular", 0, 0, PatternIrregular},
		{"all on time is regular", 9, 1, PatternRegular},
		{"mostly late is delinquent", 1, 4, PatternDelinquent},
		{"half and half is irregular", 5, 5, PatternIrregular},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := DeriveBehavior(nil, payments(tt.onTime, tt.late))
			assert.Equal(t, tt.pattern, profile.PaymentPattern)
		})
	}
}

func TestDeriveRiskLevel(t *testing.T) {
	tests := []struct {
		name        string
		daysOverdue int
		onTime      int
		late        int
		risk        string
	}{
		{"fresh debt, clean history", 10, 10, 0, RiskLow},
		{"very overdue, no late payments", 95, 10, 0, RiskMedium},
		{"very overdue, mostly late", 95, 2, 8, RiskHigh},
		{"moderately overdue, some late", 65, 6, 4, RiskMedium},
		{"no payment history at all", 95, 0, 0, RiskMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.risk, DeriveRiskLevel(tt.daysOverdue, payments(tt.onTime, tt.late)))
		})
	}
}

func TestDetectCommunicationStyle(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		style    string
	}{
		{"formal markers", []string{"Estimado señor, quisiera revisar mi deuda", "Le agradezco su atención"}, StyleFormal},
		{"informal markers", []string{"hola, oye una pregunta", "porfa mándame el detalle"}, StyleInformal},
		{"tie falls back to professional", []string{"hola, quisiera ver mi saldo"}, StyleProfessional},
		{"no markers falls back to professional", []string{"necesito el total de mi cuenta"}, StyleProfessional},
		{"empty history falls back to professional", nil, StyleProfessional},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.style, DetectCommunicationStyle(tt.messages))
		})
	}
}
