package responder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobranzia/debt-negotiation-be/internal/core/kb"
	"github.com/cobranzia/debt-negotiation-be/internal/core/nlp"
)

func genericRequest(message string) *Request {
	return &Request{
		Message:  message,
		Analysis: nlp.Analyze(message),
		Proposal: ProposalTerms{TotalAmount: 1000, Installments: 4, InstallmentAmount: 250},
		Limits:   kb.DefaultLimits(),
	}
}

func fullRequest(message string) *Request {
	req := genericRequest(message)
	req.Debtor = &kb.DebtorKnowledge{
		Personal: kb.PersonalInfo{Name: "María López"},
		Personalization: kb.PersonalizationData{
			CommunicationStyle: kb.StyleProfessional,
			RiskLevel:          kb.RiskLow,
		},
	}
	req.Corporate = &kb.CorporateKnowledge{
		Profile: kb.CorporateProfile{Name: "Banco Norte"},
		Limits:  kb.DefaultLimits(),
	}
	return req
}

func TestHeuristicGenericResponseTypes(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantType   string
		confidence float64
	}{
		{"discount", "quiero un descuento", TypeDiscountOffer, 0.9},
		{"installments", "¿puedo pagar en cuotas?", TypeInstallmentOptions, 0.95},
		{"time", "necesito más tiempo", TypeTimeExtension, 0.85},
		{"agreement", "acepto, trato hecho", TypeAgreementConfirmation, 1.0},
		{"inquiry", "¿cuál es mi saldo?", TypeGeneralInquiry, 0.7},
	}

	p := NewHeuristicProvider()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := p.Generate(context.Background(), genericRequest(tt.message))
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, resp.Type)
			assert.Equal(t, tt.confidence, resp.Confidence)
			assert.Equal(t, LevelMedium, resp.PersonalizationLevel)
			assert.NotEmpty(t, resp.Content)
		})
	}
}

func TestHeuristicGenericUsesDebtorName(t *testing.T) {
	p := NewHeuristicProvider()

	req := genericRequest("¿cuál es mi saldo?")
	req.Debtor = &kb.DebtorKnowledge{Personal: kb.PersonalInfo{Name: "María López"}}

	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)

	// One knowledge layer only: still generic, but addressed by name.
	assert.Equal(t, TypeGeneralInquiry, resp.Type)
	assert.Equal(t, LevelHigh, resp.PersonalizationLevel)
	assert.Contains(t, resp.Content, "María")
	assert.NotContains(t, resp.Content, "López")
}

func TestHeuristicPersonalized(t *testing.T) {
	p := NewHeuristicProvider()

	resp, err := p.Generate(context.Background(), fullRequest("quiero un descuento"))
	require.NoError(t, err)

	assert.Equal(t, TypePersonalized, resp.Type)
	assert.Equal(t, 0.95, resp.Confidence)
	assert.Equal(t, LevelUltraHigh, resp.PersonalizationLevel)
	assert.Contains(t, resp.Content, "Banco Norte")
	assert.Contains(t, resp.Content, "María")
}

func TestPersonalizedContentStyles(t *testing.T) {
	tests := []struct {
		style    string
		greeting string
	}{
		{kb.StyleFormal, "Estimado/a María"},
		{kb.StyleInformal, "¡Hola María!"},
		{kb.StyleProfessional, "Hola María"},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			req := fullRequest("¿cuál es mi saldo?")
			req.Debtor.Personalization.CommunicationStyle = tt.style

			assert.True(t, strings.HasPrefix(personalizedContent(TypeGeneralInquiry, req), tt.greeting))
		})
	}
}

func TestGenericDiscountUsesPolicyCeiling(t *testing.T) {
	req := genericRequest("quiero un descuento")
	req.Limits.MaxDiscountPercent = 10

	content := genericContent(TypeDiscountOffer, "", req.Proposal, req.Limits)

	// 10% off 1000
	assert.Contains(t, content, "10%")
	assert.Contains(t, content, "$900.00")
}

type failingProvider struct{}

func (failingProvider) Generate(context.Context, *Request) (*Response, error) {
	return nil, errors.New("model unavailable")
}

type panicProvider struct{}

func (panicProvider) Generate(context.Context, *Request) (*Response, error) {
	panic("unexpected state")
}

func TestGeneratorFallbackOnError(t *testing.T) {
	g := NewGenerator(failingProvider{})

	resp := g.Generate(context.Background(), genericRequest("hola"))

	assert.Equal(t, TypeTechnicalError, resp.Type)
	assert.Equal(t, 0.1, resp.Confidence)
	assert.True(t, resp.EscalationTriggered)
	assert.Equal(t, "technical_error", resp.EscalationReason)
	assert.NotEmpty(t, resp.Content)
}

func TestGeneratorFallbackOnPanic(t *testing.T) {
	g := NewGenerator(panicProvider{})

	resp := g.Generate(context.Background(), genericRequest("hola"))

	assert.Equal(t, TypeTechnicalError, resp.Type)
	assert.True(t, resp.EscalationTriggered)
}

func TestOpeningMessage(t *testing.T) {
	msg := OpeningMessage("María López", "Banco Norte", ProposalTerms{TotalAmount: 1200, Installments: 3, InstallmentAmount: 400})

	assert.Contains(t, msg, "Hola María")
	assert.Contains(t, msg, "Banco Norte")
	assert.Contains(t, msg, "$1200.00")
	assert.Contains(t, msg, "3 pago(s)")
}

func TestHandoffMessagePerReason(t *testing.T) {
	reasons := []string{
		"user_requested_human",
		"message_limit_exceeded",
		"negative_sentiment",
		"high_discount_request",
		"extended_time_request",
		"technical_error",
	}

	seen := map[string]bool{}
	for _, reason := range reasons {
		msg := HandoffMessage(reason, "María López", "Banco Norte")
		assert.Contains(t, msg, "María")
		assert.False(t, seen[msg], "handoff for %s duplicates another reason", reason)
		seen[msg] = true
	}
}
