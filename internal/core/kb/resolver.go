package kb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cobranzia/debt-negotiation-be/internal/core/cache"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/models"
	"github.com/cobranzia/debt-negotiation-be/internal/shared/utils"
)

const (
	corporateCacheTTL = 5 * time.Minute

	negotiationHistoryLimit = 5
	paymentHistoryLimit     = 10
	styleSampleLimit        = 20
)

// Resolver loads and merges the knowledge layers. Corporate knowledge is
// cached per client; debtor knowledge is recomputed on every call so it
// reflects the latest payment and negotiation state.
type Resolver struct {
	db    *gorm.DB
	cache cache.Store
	now   func() time.Time
}

func NewResolver(db *gorm.DB, store cache.Store) *Resolver {
	return &Resolver{db: db, cache: store, now: time.Now}
}

func corporateCacheKey(id uuid.UUID) string {
	return "kb:corporate:" + id.String()
}

// ResolveCorporateKnowledge merges profile, active policy and active
// custom-response templates for one corporate client. Missing policy rows
// yield the documented defaults, never an error.
func (r *Resolver) ResolveCorporateKnowledge(ctx context.Context, corporateClientID uuid.UUID) (*CorporateKnowledge, error) {
	key := corporateCacheKey(corporateClientID)
	if raw, ok := r.cache.Get(ctx, key); ok {
		var cached CorporateKnowledge
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		// Corrupt entry: drop it and fall through to the database.
		r.cache.Invalidate(ctx, key)
	}

	var client models.CorporateClient
	if err := r.db.WithContext(ctx).First(&client, "id = ?", corporateClientID).Error; err != nil {
		return nil, fmt.Errorf("load corporate client %s: %w", corporateClientID, err)
	}

	knowledge := &CorporateKnowledge{
		CorporateClientID: corporateClientID.String(),
		Profile: CorporateProfile{
			Name:        client.Name,
			Industry:    client.Industry,
			Description: client.Description,
			Tone:        client.Tone,
		},
		Limits: DefaultLimits(),
	}

	var policy models.NegotiationPolicy
	err := r.db.WithContext(ctx).
		Where("corporate_client_id = ? AND is_active = ?", corporateClientID, true).
		Order("updated_at DESC").
		First(&policy).Error
	switch {
	case err == nil:
		knowledge.Limits = NegotiationLimits{
			MaxDiscountPercent: policy.MaxDiscountPercent,
			MaxTermMonths:      policy.MaxTermMonths,
			EscalationThresholds: EscalationThresholds{
				ConversationLength: policy.ConversationLength,
				DiscountRequested:  policy.DiscountRequested,
				TimeRequested:      policy.TimeRequested,
			},
		}
	case err == gorm.ErrRecordNotFound:
		// Defaults already set.
	default:
		return nil, fmt.Errorf("load negotiation policy: %w", err)
	}

	var responses []models.CustomResponse
	if err := r.db.WithContext(ctx).
		Where("corporate_client_id = ? AND is_active = ?", corporateClientID, true).
		Order("created_at DESC").
		Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("load custom responses: %w", err)
	}
	for _, resp := range responses {
		knowledge.CustomResponses = append(knowledge.CustomResponses, parseCustomResponse(resp))
	}

	if raw, err := json.Marshal(knowledge); err == nil {
		r.cache.Set(ctx, key, raw, corporateCacheTTL)
	}

	return knowledge, nil
}

// InvalidateCorporate drops one client's cached knowledge. Every writer
// that changes policies or templates must call this for that client only.
func (r *Resolver) InvalidateCorporate(ctx context.Context, corporateClientID uuid.UUID) {
	r.cache.Invalidate(ctx, corporateCacheKey(corporateClientID))
}

func parseCustomResponse(resp models.CustomResponse) CustomResponseTemplate {
	tmpl := CustomResponseTemplate{
		Trigger: resp.Trigger,
		Title:   resp.Title,
		Tags:    resp.Tags,
	}

	var content map[string]interface{}
	if raw, err := resp.Content.MarshalJSON(); err == nil {
		if err := json.Unmarshal(raw, &content); err == nil {
			if body, ok := content["body"].(string); ok {
				tmpl.Body = body
			}
		}
	}
	return tmpl
}

// ResolveDebtorKnowledge joins the debt record, recent negotiations and
// recent payments for one (debtor, corporate client) pair and derives the
// behavior profile and personalization data.
func (r *Resolver) ResolveDebtorKnowledge(ctx context.Context, debtorID, corporateClientID uuid.UUID) (*DebtorKnowledge, error) {
	var debtor models.Debtor
	if err := r.db.WithContext(ctx).First(&debtor, "id = ?", debtorID).Error; err != nil {
		return nil, fmt.Errorf("load debtor %s: %w", debtorID, err)
	}

	knowledge := &DebtorKnowledge{
		DebtorID: debtorID.String(),
		Personal: PersonalInfo{
			Name:                   debtor.FullName,
			Email:                  debtor.Email,
			Phone:                  debtor.Phone,
			PreferredContactMethod: debtor.PreferredContactMethod,
		},
	}

	now := r.now()

	var debt models.Debt
	err := r.db.WithContext(ctx).
		Where("debtor_id = ? AND corporate_client_id = ?", debtorID, corporateClientID).
		Order("due_date ASC").
		First(&debt).Error
	switch {
	case err == nil:
		knowledge.Debt = DebtInfo{Amount: debt.Amount, DaysOverdue: debt.DaysOverdue(now)}
	case err == gorm.ErrRecordNotFound:
		// Absent debt record degrades personalization, never errors.
		utils.LogWarn("no debt record for debtor", map[string]interface{}{
			"debtor_id":           debtorID.String(),
			"corporate_client_id": corporateClientID.String(),
		})
	default:
		return nil, fmt.Errorf("load debt: %w", err)
	}

	var conversations []models.Conversation
	if err := r.db.WithContext(ctx).
		Where("debtor_id = ? AND corporate_client_id = ?", debtorID, corporateClientID).
		Order("created_at DESC").
		Limit(negotiationHistoryLimit).
		Find(&conversations).Error; err != nil {
		return nil, fmt.Errorf("load negotiation history: %w", err)
	}
	for _, conv := range conversations {
		knowledge.NegotiationHistory = append(knowledge.NegotiationHistory, NegotiationSummary{
			ConversationID: conv.ID.String(),
			Status:         conv.Status,
			MessageCount:   conv.MessageCount,
			StartedAt:      conv.CreatedAt,
		})
	}

	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Where("debtor_id = ?", debtorID).
		Order("due_date DESC").
		Limit(paymentHistoryLimit).
		Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("load payment history: %w", err)
	}
	for _, p := range payments {
		knowledge.PaymentHistory = append(knowledge.PaymentHistory, PaymentRecord{
			Amount:  p.Amount,
			DueDate: p.DueDate,
			PaidAt:  p.PaidAt,
			OnTime:  p.OnTime(),
			Late:    p.Late(now),
		})
	}

	styleSample, err := r.recentDebtorMessages(ctx, conversations)
	if err != nil {
		return nil, err
	}

	knowledge.Behavior = DeriveBehavior(knowledge.NegotiationHistory, knowledge.PaymentHistory)
	knowledge.Personalization = PersonalizationData{
		PreferredContactMethod: debtor.PreferredContactMethod,
		CommunicationStyle:     DetectCommunicationStyle(styleSample),
		RiskLevel:              DeriveRiskLevel(knowledge.Debt.DaysOverdue, knowledge.PaymentHistory),
	}

	return knowledge, nil
}

// recentDebtorMessages samples the debtor's own messages from the prior
// negotiations for communication-style detection.
func (r *Resolver) recentDebtorMessages(ctx context.Context, conversations []models.Conversation) ([]string, error) {
	if len(conversations) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(conversations))
	for i, c := range conversations {
		ids[i] = c.ID
	}

	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id IN ? AND sender_type = ?", ids, models.SenderDebtor).
		Order("created_at DESC").
		Limit(styleSampleLimit).
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("load style sample: %w", err)
	}

	sample := make([]string, len(messages))
	for i, m := range messages {
		sample[i] = m.Content
	}
	return sample, nil
}
