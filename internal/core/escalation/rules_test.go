package escalation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cobranzia/debt-negotiation-be/internal/core/kb"
	"github.com/cobranzia/debt-negotiation-be/internal/core/nlp"
)

func input(message string, count int) Input {
	return Input{
		Message:      message,
		Analysis:     nlp.Analyze(message),
		MessageCount: count,
		Limits:       kb.DefaultLimits(),
	}
}

func TestDecideHumanRequestWins(t *testing.T) {
	e := NewEngine(nlp.NewRegexExtractor())

	// Human request outranks every other trigger, even when a 50%
	// discount request and negative sentiment are present.
	d := e.Decide(input("no puedo pagar, quiero un 50% de descuento o hablar con una persona", 20))

	assert.True(t, d.ShouldEscalate)
	assert.Equal(t, ReasonUserRequestedHuman, d.Reason)
	assert.Equal(t, PriorityHigh, d.Priority)
}

func TestDecideMessageLimitBoundary(t *testing.T) {
	e := NewEngine(nlp.NewRegexExtractor())

	below := e.Decide(input("¿cuál es mi saldo?", 14))
	assert.False(t, below.ShouldEscalate)

	at := e.Decide(input("¿cuál es mi saldo?", 15))
	assert.True(t, at.ShouldEscalate)
	assert.Equal(t, ReasonMessageLimitExceeded, at.Reason)
	assert.Equal(t, PriorityMedium, at.Priority)
}

func TestDecideNegativeSentiment(t *testing.T) {
	e := NewEngine(nlp.NewRegexExtractor())

	d := e.Decide(input("no tengo dinero, estoy sin trabajo", 3))

	assert.True(t, d.ShouldEscalate)
	assert.Equal(t, ReasonNegativeSentiment, d.Reason)
	assert.Equal(t, PriorityHigh, d.Priority)
}

func TestDecideDiscountThreshold(t *testing.T) {
	e := NewEngine(nlp.NewRegexExtractor())

	tests := []struct {
		name     string
		message  string
		escalate bool
		reason   string
	}{
		{"above threshold", "quiero un 25% de descuento", true, ReasonHighDiscountRequest},
		{"at threshold stays", "quiero un 20% de descuento", false, ""},
		{"no amount never trips", "quiero un descuento grande", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := e.Decide(input(tt.message, 2))
			assert.Equal(t, tt.escalate, d.ShouldEscalate)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestDecideTimeThreshold(t *testing.T) {
	e := NewEngine(nlp.NewRegexExtractor())

	over := e.Decide(input("necesito 24 meses más de tiempo", 2))
	assert.True(t, over.ShouldEscalate)
	assert.Equal(t, ReasonExtendedTimeRequest, over.Reason)

	within := e.Decide(input("necesito 6 meses más de tiempo", 2))
	assert.False(t, within.ShouldEscalate)
}

func TestDecideNoTrigger(t *testing.T) {
	e := NewEngine(nlp.NewRegexExtractor())

	d := e.Decide(input("¿me pueden enviar el detalle de mi cuenta?", 4))

	assert.False(t, d.ShouldEscalate)
	assert.Empty(t, d.Reason)
	assert.Empty(t, d.Priority)
}

type panickyExtractor struct{}

func (panickyExtractor) DiscountPercent(string) int { panic("boom") }
func (panickyExtractor) TermMonths(string) int      { panic("boom") }

func TestDecideFailsClosedOnPanic(t *testing.T) {
	e := NewEngine(panickyExtractor{})

	d := e.Decide(input("quiero un 25% de descuento", 2))

	assert.True(t, d.ShouldEscalate)
	assert.Equal(t, ReasonTechnicalError, d.Reason)
	assert.Equal(t, PriorityHigh, d.Priority)
}
