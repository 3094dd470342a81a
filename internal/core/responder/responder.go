// Package responder produces the outbound message for one negotiation
// turn, either by deterministic template substitution or by
// knowledge-personalized composition.
package responder

import (
	"context"
	"fmt"

	"github.com/cobranzia/debt-negotiation-be/internal/core/kb"
	"github.com/cobranzia/debt-negotiation-be/internal/core/nlp"
	"github.com/cobranzia/debt-negotiation-be/internal/shared/utils"
)

// Response types. Confidence is fixed per type; these are design
// constants that keep downstream analytics comparable, not derived scores.
const (
	TypeDiscountOffer         = "discount_offer"
	TypeInstallmentOptions    = "installment_options"
	TypeTimeExtension         = "time_extension"
	TypeAgreementConfirmation = "agreement_confirmation"
	TypeGeneralInquiry        = "general_inquiry"
	TypePersonalized          = "personalized_response"
	TypeTechnicalError        = "technical_error"
)

var confidenceByType = map[string]float64{
	TypeDiscountOffer:         0.9,
	TypeInstallmentOptions:    0.95,
	TypeTimeExtension:         0.85,
	TypeAgreementConfirmation: 1.0,
	TypeGeneralInquiry:        0.7,
	TypePersonalized:          0.95,
	TypeTechnicalError:        0.1,
}

// Personalization levels.
const (
	LevelUltraHigh = "ultra_high"
	LevelHigh      = "high"
	LevelMedium    = "medium"
)

// ProposalTerms is the read-only slice of the proposal the generator may
// consult for amounts.
type ProposalTerms struct {
	TotalAmount       float64
	Installments      int
	InstallmentAmount float64
}

// Request carries everything available for one turn. Debtor and Corporate
// are nil when that knowledge layer could not be resolved; absence
// degrades personalization, it never fails the turn.
type Request struct {
	Message   string
	Analysis  nlp.Analysis
	Proposal  ProposalTerms
	Limits    kb.NegotiationLimits
	Debtor    *kb.DebtorKnowledge
	Corporate *kb.CorporateKnowledge
}

// Response is the generated outbound content.
type Response struct {
	Content              string   `json:"content"`
	Confidence           float64  `json:"confidence"`
	Keywords             []string `json:"keywords"`
	Type                 string   `json:"type"`
	PersonalizationLevel string   `json:"personalization_level"`
	EscalationTriggered  bool     `json:"escalation_triggered"`
	EscalationReason     string   `json:"escalation_reason,omitempty"`
}

// Provider generates a response for a turn. Implementations may fail;
// the Generator absorbs their failures.
type Provider interface {
	Generate(ctx context.Context, req *Request) (*Response, error)
}

// Generator wraps a Provider with the engine's universal safety net: any
// provider error or panic becomes the fixed technical-error response with
// a forced escalation, so the debtor always receives a reply.
type Generator struct {
	provider Provider
}

func NewGenerator(provider Provider) *Generator {
	return &Generator{provider: provider}
}

// Generate never returns an error.
func (g *Generator) Generate(ctx context.Context, req *Request) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			utils.LogError("response generation panicked", nil, map[string]interface{}{"panic": r})
			resp = TechnicalErrorResponse()
		}
	}()

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		utils.LogError("response generation failed, using fallback", err, nil)
		return TechnicalErrorResponse()
	}
	return resp
}

// TechnicalErrorResponse is the fixed fallback reply.
func TechnicalErrorResponse() *Response {
	return &Response{
		Content: "Disculpa, estamos experimentando un inconveniente técnico. " +
			"Un representante revisará tu caso y te contactará a la brevedad.",
		Confidence:           confidenceByType[TypeTechnicalError],
		Keywords:             []string{},
		Type:                 TypeTechnicalError,
		PersonalizationLevel: LevelMedium,
		EscalationTriggered:  true,
		EscalationReason:     "technical_error",
	}
}

func fixedConfidence(responseType string) float64 {
	c, ok := confidenceByType[responseType]
	if !ok {
		return confidenceByType[TypeGeneralInquiry]
	}
	return c
}

func formatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
