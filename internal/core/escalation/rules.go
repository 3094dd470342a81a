// Package escalation decides when a conversation must be handed from the
// AI to a human representative. The decision is an ordered rule chain
// evaluated first-match-wins; the ordering is enforced by the rule slice
// itself, not by review discipline.
package escalation

import (
	"github.com/cobranzia/debt-negotiation-be/internal/core/kb"
	"github.com/cobranzia/debt-negotiation-be/internal/core/nlp"
	"github.com/cobranzia/debt-negotiation-be/internal/shared/utils"
)

// Escalation reasons.
const (
	ReasonUserRequestedHuman   = "user_requested_human"
	ReasonMessageLimitExceeded = "message_limit_exceeded"
	ReasonNegativeSentiment    = "negative_sentiment"
	ReasonHighDiscountRequest  = "high_discount_request"
	ReasonExtendedTimeRequest  = "extended_time_request"
	ReasonTechnicalError       = "technical_error"
)

// Priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

const negativeSentimentCutoff = 0.3

// Decision is the outcome of evaluating the rule chain.
type Decision struct {
	ShouldEscalate bool   `json:"should_escalate"`
	Reason         string `json:"reason,omitempty"`
	Priority       string `json:"priority,omitempty"`
}

// Input is everything the chain may consult for one turn.
type Input struct {
	Message      string
	Analysis     nlp.Analysis
	MessageCount int
	Limits       kb.NegotiationLimits
}

type rule struct {
	reason   string
	priority string
	matches  func(in Input, extract nlp.AmountExtractor) bool
}

// Engine evaluates the ordered rule chain.
type Engine struct {
	extractor nlp.AmountExtractor
	rules     []rule
}

// NewEngine builds the chain in its mandatory order: an explicit human
// request always wins over every numeric-threshold check.
func NewEngine(extractor nlp.AmountExtractor) *Engine {
	return &Engine{
		extractor: extractor,
		rules: []rule{
			{
				reason:   ReasonUserRequestedHuman,
				priority: PriorityHigh,
				matches: func(in Input, _ nlp.AmountExtractor) bool {
					return in.Analysis.HasKeyword(nlp.KeywordHuman)
				},
			},
			{
				reason:   ReasonMessageLimitExceeded,
				priority: PriorityMedium,
				matches: func(in Input, _ nlp.AmountExtractor) bool {
					// Boundary is inclusive: count == threshold escalates.
					return in.MessageCount >= in.Limits.EscalationThresholds.ConversationLength
				},
			},
			{
				reason:   ReasonNegativeSentiment,
				priority: PriorityHigh,
				matches: func(in Input, _ nlp.AmountExtractor) bool {
					return in.Analysis.SentimentScore < negativeSentimentCutoff
				},
			},
			{
				reason:   ReasonHighDiscountRequest,
				priority: PriorityMedium,
				matches: func(in Input, extract nlp.AmountExtractor) bool {
					if !in.Analysis.HasKeyword(nlp.KeywordDiscount) {
						return false
					}
					// No extractable amount yields 0, which never trips.
					return extract.DiscountPercent(in.Message) > in.Limits.EscalationThresholds.DiscountRequested
				},
			},
			{
				reason:   ReasonExtendedTimeRequest,
				priority: PriorityMedium,
				matches: func(in Input, extract nlp.AmountExtractor) bool {
					if !in.Analysis.HasKeyword(nlp.KeywordTime) {
						return false
					}
					return extract.TermMonths(in.Message) > in.Limits.EscalationThresholds.TimeRequested
				},
			},
		},
	}
}

// Decide evaluates the chain and short-circuits on the first match. If the
// chain itself fails it fails closed: a conversation the engine cannot
// safely evaluate goes to a human.
func (e *Engine) Decide(in Input) (decision Decision) {
	defer func() {
		if r := recover(); r != nil {
			utils.LogError("escalation chain panicked, failing closed", nil, map[string]interface{}{"panic": r})
			decision = Decision{ShouldEscalate: true, Reason: ReasonTechnicalError, Priority: PriorityHigh}
		}
	}()

	for _, r := range e.rules {
		if r.matches(in, e.extractor) {
			return Decision{ShouldEscalate: true, Reason: r.reason, Priority: r.priority}
		}
	}
	return Decision{ShouldEscalate: false}
}
