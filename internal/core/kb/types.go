// Package kb resolves and merges the knowledge layers used to personalize
// negotiation responses: the corporate profile and policies on one side,
// the individual debtor's debt and history on the other.
package kb

import "time"

// Default policy ceilings applied when a corporate client has no active
// policy configured.
const (
	DefaultMaxDiscountPercent = 15
	DefaultMaxTermMonths      = 12

	DefaultThresholdConversationLength = 15
	DefaultThresholdDiscountRequested  = 20
	DefaultThresholdTimeRequested      = 18
)

// EscalationThresholds are the per-client escalation trip points.
type EscalationThresholds struct {
	ConversationLength int `json:"conversation_length"`
	DiscountRequested  int `json:"discount_requested"`
	TimeRequested      int `json:"time_requested"`
}

// NegotiationLimits is the policy ceiling bounding what the AI may offer.
type NegotiationLimits struct {
	MaxDiscountPercent   int                  `json:"max_discount_percent"`
	MaxTermMonths        int                  `json:"max_term_months"`
	EscalationThresholds EscalationThresholds `json:"escalation_thresholds"`
}

// DefaultLimits returns the documented hard-coded defaults.
func DefaultLimits() NegotiationLimits {
	return NegotiationLimits{
		MaxDiscountPercent: DefaultMaxDiscountPercent,
		MaxTermMonths:      DefaultMaxTermMonths,
		EscalationThresholds: EscalationThresholds{
			ConversationLength: DefaultThresholdConversationLength,
			DiscountRequested:  DefaultThresholdDiscountRequested,
			TimeRequested:      DefaultThresholdTimeRequested,
		},
	}
}

// CorporateProfile is the creditor's public-facing identity.
type CorporateProfile struct {
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
	Tone        string `json:"tone"`
}

// CustomResponseTemplate is a corporate-authored template keyed by the
// intent that triggers it.
type CustomResponseTemplate struct {
	Trigger string   `json:"trigger"`
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	Tags    []string `json:"tags,omitempty"`
}

// CorporateKnowledge is the merged corporate layer. Cached 5 minutes per
// client; invalidated explicitly when policies or templates change.
type CorporateKnowledge struct {
	CorporateClientID string                   `json:"corporate_client_id"`
	Profile           CorporateProfile         `json:"profile"`
	CustomResponses   []CustomResponseTemplate `json:"custom_responses"`
	Limits            NegotiationLimits        `json:"limits"`
}

// Negotiation tendencies.
const (
	TendencyCooperative = "cooperative"
	TendencyResistant   = "resistant"
)

// Payment patterns.
const (
	PatternRegular    = "regular"
	PatternIrregular  = "irregular"
	PatternDelinquent = "delinquent"
)

// Risk levels.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Communication styles.
const (
	StyleFormal       = "formal"
	StyleInformal     = "informal"
	StyleProfessional = "professional"
)

// PersonalInfo is the debtor's identity slice of the knowledge base.
type PersonalInfo struct {
	Name                   string `json:"name"`
	Email                  string `json:"email,omitempty"`
	Phone                  string `json:"phone,omitempty"`
	PreferredContactMethod string `json:"preferred_contact_method,omitempty"`
}

// DebtInfo is the debtor's outstanding obligation toward this client.
type DebtInfo struct {
	Amount      float64 `json:"amount"`
	DaysOverdue int     `json:"days_overdue"`
}

// NegotiationSummary condenses one prior negotiation conversation.
type NegotiationSummary struct {
	ConversationID string    `json:"conversation_id"`
	Status         string    `json:"status"`
	MessageCount   int       `json:"message_count"`
	StartedAt      time.Time `json:"started_at"`
}

// PaymentRecord is one prior payment, classified for profile derivation.
type PaymentRecord struct {
	Amount  float64    `json:"amount"`
	DueDate time.Time  `json:"due_date"`
	PaidAt  *time.Time `json:"paid_at,omitempty"`
	OnTime  bool       `json:"on_time"`
	Late    bool       `json:"late"`
}

// BehaviorProfile is the derived classification of historical tendencies.
// NegotiationTendency is empty when history is too mixed to classify.
type BehaviorProfile struct {
	NegotiationTendency string `json:"negotiation_tendency,omitempty"`
	PaymentPattern      string `json:"payment_pattern"`
}

// PersonalizationData drives tone and risk handling in generated responses.
type PersonalizationData struct {
	PreferredContactMethod string `json:"preferred_contact_method,omitempty"`
	CommunicationStyle     string `json:"communication_style"`
	RiskLevel              string `json:"risk_level"`
}

// DebtorKnowledge is the merged debtor layer for one (debtor, corporate
// client) pair. Recomputed on every request so it always reflects the
// latest payment and negotiation state.
type DebtorKnowledge struct {
	DebtorID           string               `json:"debtor_id"`
	Personal           PersonalInfo         `json:"personal"`
	Debt               DebtInfo             `json:"debt"`
	NegotiationHistory []NegotiationSummary `json:"negotiation_history"`
	PaymentHistory     []PaymentRecord      `json:"payment_history"`
	Behavior           BehaviorProfile      `json:"behavior"`
	Personalization    PersonalizationData  `json:"personalization"`
}
