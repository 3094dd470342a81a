package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountPercent(t *testing.T) {
	ex := NewRegexExtractor()

	tests := []struct {
		name    string
		message string
		want    int
	}{
		{"plain", "quiero un 25% de descuento", 25},
		{"space before percent", "me dan el 30 % de rebaja?", 30},
		{"no percent", "quiero un descuento", 0},
		{"first match wins", "10% o mejor 20%", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ex.DiscountPercent(tt.message))
		})
	}
}

func TestTermMonths(t *testing.T) {
	ex := NewRegexExtractor()

	tests := []struct {
		name    string
		message string
		want    int
	}{
		{"plural", "necesito 6 meses", 6},
		{"singular", "dame 1 mes más", 1},
		{"no number", "necesito más tiempo", 0},
		{"word boundary", "pago 3 mesadas", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ex.TermMonths(tt.message))
		})
	}
}
