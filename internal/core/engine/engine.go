// Package engine sequences one negotiation turn: resolve knowledge,
// analyze the inbound message, evaluate escalation, generate or hand off,
// and persist the result. It owns the conversation state machine.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/cobranzia/debt-negotiation-be/internal/core/analytics"
	"github.com/cobranzia/debt-negotiation-be/internal/core/escalation"
	"github.com/cobranzia/debt-negotiation-be/internal/core/kb"
	"github.com/cobranzia/debt-negotiation-be/internal/core/nlp"
	"github.com/cobranzia/debt-negotiation-be/internal/core/responder"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/models"
	"github.com/cobranzia/debt-negotiation-be/internal/shared/utils"
)

var (
	// ErrTurnInProgress means another AI turn for the same conversation is
	// still being generated. The caller should retry shortly.
	ErrTurnInProgress = errors.New("a turn for this conversation is already in progress")

	// ErrConversationClosed means the conversation no longer accepts AI
	// turns (terminal status or a human took over).
	ErrConversationClosed = errors.New("conversation does not accept AI turns")

	ErrInvalidOutcome = errors.New("outcome must be agreed or rejected")
)

// ConversationStore persists conversations.
type ConversationStore interface {
	GetConversation(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	UpdateConversation(ctx context.Context, conv *models.Conversation) error
}

// MessageStore appends to the append-only message log.
type MessageStore interface {
	AppendMessage(ctx context.Context, msg *models.Message) error
	CountBySender(ctx context.Context, conversationID uuid.UUID, senderType string) (int64, error)
}

// ProposalStore reads the proposal under negotiation.
type ProposalStore interface {
	GetProposal(ctx context.Context, id uuid.UUID) (*models.Proposal, error)
}

// KnowledgeResolver resolves the two knowledge layers. Satisfied by
// kb.Resolver.
type KnowledgeResolver interface {
	ResolveCorporateKnowledge(ctx context.Context, corporateClientID uuid.UUID) (*kb.CorporateKnowledge, error)
	ResolveDebtorKnowledge(ctx context.Context, debtorID, corporateClientID uuid.UUID) (*kb.DebtorKnowledge, error)
}

// EventTracker records analytics events on milestones and terminal states.
type EventTracker interface {
	Track(ctx context.Context, companyID uuid.UUID, eventType string, payload analytics.TrackPayload) error
}

// Options tune turn processing.
type Options struct {
	TurnTimeout time.Duration
	MaxRetries  int
}

// Engine is the conversation orchestrator.
type Engine struct {
	conversations ConversationStore
	messages      MessageStore
	proposals     ProposalStore
	resolver      KnowledgeResolver
	escalator     *escalation.Engine
	generator     *responder.Generator
	tracker       EventTracker

	turnTimeout time.Duration
	maxRetries  int

	// One mutex per live conversation guarantees at most one in-flight AI
	// turn; a concurrent second message is rejected, never interleaved.
	turnLocks sync.Map // uuid.UUID -> *sync.Mutex
}

func NewEngine(
	conversations ConversationStore,
	messages MessageStore,
	proposals ProposalStore,
	resolver KnowledgeResolver,
	escalator *escalation.Engine,
	generator *responder.Generator,
	tracker EventTracker,
	opts Options,
) *Engine {
	if opts.TurnTimeout <= 0 {
		opts.TurnTimeout = 30 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	return &Engine{
		conversations: conversations,
		messages:      messages,
		proposals:     proposals,
		resolver:      resolver,
		escalator:     escalator,
		generator:     generator,
		tracker:       tracker,
		turnTimeout:   opts.TurnTimeout,
		maxRetries:    opts.MaxRetries,
	}
}

// negotiationContext is the snapshot embedded in the conversation when the
// negotiation starts.
type negotiationContext struct {
	Proposal responder.ProposalTerms `json:"proposal"`
	Limits   kb.NegotiationLimits    `json:"limits"`
}

// StartNegotiation creates a conversation in "negotiating" for a proposal
// and persists the AI-authored opening message.
func (e *Engine) StartNegotiation(ctx context.Context, proposalID uuid.UUID, corporateClientID *uuid.UUID) (*models.Conversation, error) {
	proposal, err := e.proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("load proposal: %w", err)
	}

	terms := responder.ProposalTerms{
		TotalAmount:       proposal.TotalAmount,
		Installments:      proposal.Installments,
		InstallmentAmount: proposal.InstallmentAmount,
	}

	limits := kb.DefaultLimits()
	corporateName := ""
	debtorName := ""
	if corporateClientID != nil {
		if corporate, err := e.resolver.ResolveCorporateKnowledge(ctx, *corporateClientID); err == nil {
			limits = corporate.Limits
			corporateName = corporate.Profile.Name
		} else {
			utils.LogWarn("corporate knowledge unavailable at start, using defaults", map[string]interface{}{
				"corporate_client_id": corporateClientID.String(), "error": err.Error(),
			})
		}
		if debtor, err := e.resolver.ResolveDebtorKnowledge(ctx, proposal.DebtorID, *corporateClientID); err == nil {
			debtorName = debtor.Personal.Name
		}
	}

	snapshot, err := json.Marshal(negotiationContext{Proposal: terms, Limits: limits})
	if err != nil {
		return nil, fmt.Errorf("marshal negotiation context: %w", err)
	}

	conv := &models.Conversation{
		ProposalID:         proposalID,
		DebtorID:           proposal.DebtorID,
		CompanyID:          proposal.CompanyID,
		CorporateClientID:  corporateClientID,
		Status:             models.StatusNegotiating,
		AIEnabled:          true,
		NegotiationContext: datatypes.JSON(snapshot),
	}
	if err := e.withRetry(ctx, func() error { return e.conversations.CreateConversation(ctx, conv) }); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	opening := &models.Message{
		ConversationID: conv.ID,
		SenderType:     models.SenderAIAssistant,
		Content:        responder.OpeningMessage(debtorName, corporateName, terms),
	}
	if err := e.appendMessage(ctx, conv, opening); err != nil {
		return nil, err
	}

	if err := e.tracker.Track(ctx, conv.CompanyID, models.EventNegotiationStarted, analytics.TrackPayload{
		ProposalID: &proposalID,
	}); err != nil {
		utils.LogWarn("failed to track negotiation start", map[string]interface{}{"error": err.Error()})
	}

	utils.LogInfo("negotiation started", map[string]interface{}{
		"conversation_id": conv.ID.String(),
		"proposal_id":     proposalID.String(),
	})
	return conv, nil
}

// ProcessTurn runs one AI turn for an inbound debtor message. The reply,
// either a generated response or a reason-specific handoff, is always
// persisted before returning; persistence failures surface as retryable
// errors.
func (e *Engine) ProcessTurn(ctx context.Context, conversationID uuid.UUID, content string) (*models.Message, error) {
	lock := e.lockFor(conversationID)
	if !lock.TryLock() {
		return nil, ErrTurnInProgress
	}
	defer lock.Unlock()

	ctx, cancel := context.WithTimeout(ctx, e.turnTimeout)
	defer cancel()

	conv, err := e.conversations.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if conv.Terminal() || !conv.AIEnabled {
		return nil, ErrConversationClosed
	}

	// The escalation chain sees the count as of message arrival, so the
	// threshold boundary is not shifted by this turn's own append.
	arrivalCount := conv.MessageCount

	inbound := &models.Message{
		ConversationID: conv.ID,
		SenderType:     models.SenderDebtor,
		Content:        content,
	}
	if err := e.appendMessage(ctx, conv, inbound); err != nil {
		return nil, err
	}

	corporate, debtor := e.resolveKnowledge(ctx, conv)

	limits := kb.DefaultLimits()
	if corporate != nil {
		limits = corporate.Limits
	}

	analysis := nlp.Analyze(content)

	decision := e.escalator.Decide(escalation.Input{
		Message:      content,
		Analysis:     analysis,
		MessageCount: arrivalCount,
		Limits:       limits,
	})
	if decision.ShouldEscalate {
		return e.escalate(ctx, conv, analysis, decision.Reason, corporate, debtor)
	}

	terms, _ := e.contextTerms(conv)
	response := e.generator.Generate(ctx, &responder.Request{
		Message:   content,
		Analysis:  analysis,
		Proposal:  terms,
		Limits:    limits,
		Debtor:    debtor,
		Corporate: corporate,
	})

	// The generator's internal failures surface as a forced escalation
	// with the fallback content, never as a hard error to the debtor.
	if response.EscalationTriggered {
		return e.escalateWithContent(ctx, conv, analysis, response.EscalationReason, response)
	}

	reply := &models.Message{
		ConversationID: conv.ID,
		SenderType:     models.SenderAIAssistant,
		Content:        response.Content,
		Metadata:       marshalMetadata(analysis, response, false, ""),
	}
	if err := e.appendMessage(ctx, conv, reply); err != nil {
		return nil, err
	}

	return reply, nil
}

// RecordOutcome records an acceptance or rejection decided outside the AI
// loop and emits the terminal analytics event.
func (e *Engine) RecordOutcome(ctx context.Context, conversationID uuid.UUID, outcome string) (*models.Conversation, error) {
	if outcome != models.StatusAgreed && outcome != models.StatusRejected {
		return nil, ErrInvalidOutcome
	}

	conv, err := e.conversations.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if conv.Status == models.StatusAgreed || conv.Status == models.StatusRejected || conv.Status == models.StatusAbandoned {
		return nil, ErrConversationClosed
	}

	conv.Status = outcome
	conv.AIEnabled = false
	if err := e.withRetry(ctx, func() error { return e.conversations.UpdateConversation(ctx, conv) }); err != nil {
		return nil, fmt.Errorf("update conversation: %w", err)
	}

	payload := e.terminalPayload(ctx, conv)
	if outcome == models.StatusAgreed {
		agreed := models.OutcomeAgreement
		payload.Outcome = &agreed
	} else {
		payload.Metadata = map[string]interface{}{"action": "rejected"}
	}
	if err := e.tracker.Track(ctx, conv.CompanyID, models.EventNegotiationResolved, payload); err != nil {
		utils.LogWarn("failed to track outcome", map[string]interface{}{"error": err.Error()})
	}

	return conv, nil
}

// Abandon marks a stale conversation abandoned. Used by the sweeper.
func (e *Engine) Abandon(ctx context.Context, conv *models.Conversation) error {
	conv.Status = models.StatusAbandoned
	conv.AIEnabled = false
	if err := e.withRetry(ctx, func() error { return e.conversations.UpdateConversation(ctx, conv) }); err != nil {
		return fmt.Errorf("update conversation: %w", err)
	}

	payload := e.terminalPayload(ctx, conv)
	abandoned := models.OutcomeAbandoned
	payload.Outcome = &abandoned
	if err := e.tracker.Track(ctx, conv.CompanyID, models.EventNegotiationResolved, payload); err != nil {
		utils.LogWarn("failed to track abandonment", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (e *Engine) escalate(ctx context.Context, conv *models.Conversation, analysis nlp.Analysis, reason string, corporate *kb.CorporateKnowledge, debtor *kb.DebtorKnowledge) (*models.Message, error) {
	debtorName := ""
	if debtor != nil {
		debtorName = debtor.Personal.Name
	}
	corporateName := ""
	if corporate != nil {
		corporateName = corporate.Profile.Name
	}

	handoff := &responder.Response{
		Content:              responder.HandoffMessage(reason, debtorName, corporateName),
		Type:                 "handoff",
		PersonalizationLevel: responder.LevelMedium,
	}
	return e.escalateWithContent(ctx, conv, analysis, reason, handoff)
}

func (e *Engine) escalateWithContent(ctx context.Context, conv *models.Conversation, analysis nlp.Analysis, reason string, response *responder.Response) (*models.Message, error) {
	handoff := &models.Message{
		ConversationID: conv.ID,
		SenderType:     models.SenderAIAssistant,
		Content:        response.Content,
		Metadata:       marshalMetadata(analysis, response, true, reason),
	}
	if err := e.appendMessage(ctx, conv, handoff); err != nil {
		return nil, err
	}

	// AI is disengaged the instant the status flips.
	conv.Status = models.StatusEscalated
	conv.AIEnabled = false
	if err := e.withRetry(ctx, func() error { return e.conversations.UpdateConversation(ctx, conv) }); err != nil {
		return nil, fmt.Errorf("update conversation: %w", err)
	}

	payload := e.terminalPayload(ctx, conv)
	escalated := models.OutcomeEscalated
	payload.Outcome = &escalated
	payload.Metadata = map[string]interface{}{"reason": reason}
	if err := e.tracker.Track(ctx, conv.CompanyID, models.EventNegotiationResolved, payload); err != nil {
		utils.LogWarn("failed to track escalation", map[string]interface{}{"error": err.Error()})
	}

	utils.LogInfo("conversation escalated", map[string]interface{}{
		"conversation_id": conv.ID.String(),
		"reason":          reason,
	})
	return handoff, nil
}

// appendMessage durably appends a message and then advances the
// conversation's message count. The count only moves after the append
// succeeded.
func (e *Engine) appendMessage(ctx context.Context, conv *models.Conversation, msg *models.Message) error {
	if err := e.withRetry(ctx, func() error { return e.messages.AppendMessage(ctx, msg) }); err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	conv.MessageCount++
	if err := e.withRetry(ctx, func() error { return e.conversations.UpdateConversation(ctx, conv) }); err != nil {
		return fmt.Errorf("update message count: %w", err)
	}
	return nil
}

// resolveKnowledge loads both layers, degrading to nil on failure so the
// generator can fall back to generic templates.
func (e *Engine) resolveKnowledge(ctx context.Context, conv *models.Conversation) (*kb.CorporateKnowledge, *kb.DebtorKnowledge) {
	if conv.CorporateClientID == nil {
		return nil, nil
	}

	corporate, err := e.resolver.ResolveCorporateKnowledge(ctx, *conv.CorporateClientID)
	if err != nil {
		utils.LogWarn("corporate knowledge unavailable", map[string]interface{}{
			"conversation_id": conv.ID.String(), "error": err.Error(),
		})
		corporate = nil
	}

	debtor, err := e.resolver.ResolveDebtorKnowledge(ctx, conv.DebtorID, *conv.CorporateClientID)
	if err != nil {
		utils.LogWarn("debtor knowledge unavailable", map[string]interface{}{
			"conversation_id": conv.ID.String(), "error": err.Error(),
		})
		debtor = nil
	}

	return corporate, debtor
}

func (e *Engine) contextTerms(conv *models.Conversation) (responder.ProposalTerms, error) {
	var snapshot negotiationContext
	if len(conv.NegotiationContext) > 0 {
		if err := json.Unmarshal(conv.NegotiationContext, &snapshot); err != nil {
			return responder.ProposalTerms{}, err
		}
		return snapshot.Proposal, nil
	}

	proposal, err := e.proposals.GetProposal(context.Background(), conv.ProposalID)
	if err != nil {
		return responder.ProposalTerms{}, err
	}
	return responder.ProposalTerms{
		TotalAmount:       proposal.TotalAmount,
		Installments:      proposal.Installments,
		InstallmentAmount: proposal.InstallmentAmount,
	}, nil
}

func (e *Engine) terminalPayload(ctx context.Context, conv *models.Conversation) analytics.TrackPayload {
	aiMessages := 0
	if n, err := e.messages.CountBySender(ctx, conv.ID, models.SenderAIAssistant); err == nil {
		aiMessages = int(n)
	}
	proposalID := conv.ProposalID
	return analytics.TrackPayload{
		ProposalID:      &proposalID,
		DurationMinutes: int(time.Since(conv.CreatedAt).Minutes()),
		AIMessages:      aiMessages,
	}
}

func (e *Engine) lockFor(conversationID uuid.UUID) *sync.Mutex {
	actual, _ := e.turnLocks.LoadOrStore(conversationID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// withRetry retries transient persistence failures with a short linear
// backoff, up to the configured attempt limit.
func (e *Engine) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt < e.maxRetries {
			select {
			case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return err
}

func marshalMetadata(analysis nlp.Analysis, response *responder.Response, escalated bool, reason string) datatypes.JSON {
	meta := models.MessageMetadata{
		Intent:               analysis.Intent,
		Sentiment:            analysis.Sentiment,
		SentimentScore:       analysis.SentimentScore,
		Keywords:             analysis.Keywords,
		Confidence:           response.Confidence,
		ResponseType:         response.Type,
		PersonalizationLevel: response.PersonalizationLevel,
		EscalationTriggered:  escalated,
		EscalationReason:     reason,
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
