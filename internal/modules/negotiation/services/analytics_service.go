package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/cobranzia/debt-negotiation-be/internal/core/analytics"
	"github.com/cobranzia/debt-negotiation-be/internal/core/cache"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/models"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/repositories"
)

const metricsCacheTTL = 5 * time.Minute

// AnalyticsService appends events and serves the cached per-company
// rollups. It satisfies engine.EventTracker.
type AnalyticsService struct {
	repo  repositories.AnalyticsRepo
	cache cache.Store
	now   func() time.Time
}

func NewAnalyticsService(repo repositories.AnalyticsRepo, store cache.Store) *AnalyticsService {
	return &AnalyticsService{repo: repo, cache: store, now: time.Now}
}

func metricsCacheKey(companyID uuid.UUID) string {
	return "analytics:general:" + companyID.String()
}

// Track appends one event and invalidates that company's metrics cache
// key so the next read recomputes.
func (s *AnalyticsService) Track(ctx context.Context, companyID uuid.UUID, eventType string, payload analytics.TrackPayload) error {
	event := &models.AnalyticsEvent{
		CompanyID:                   companyID,
		ProposalID:                  payload.ProposalID,
		EventType:                   eventType,
		Outcome:                     payload.Outcome,
		ConversationDurationMinutes: payload.DurationMinutes,
		AIMessages:                  payload.AIMessages,
	}
	if payload.Metadata != nil {
		if raw, err := json.Marshal(payload.Metadata); err == nil {
			event.Metadata = datatypes.JSON(raw)
		}
	}

	if err := s.repo.InsertEvent(ctx, event); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, metricsCacheKey(companyID))
	return nil
}

// GetGeneralMetrics returns the company rollup, cached 5 minutes.
func (s *AnalyticsService) GetGeneralMetrics(ctx context.Context, companyID uuid.UUID) (*analytics.GeneralMetrics, error) {
	key := metricsCacheKey(companyID)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached analytics.GeneralMetrics
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		s.cache.Invalidate(ctx, key)
	}

	active, err := s.repo.CountConversations(ctx, companyID, []string{models.StatusActive, models.StatusNegotiating})
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountConversations(ctx, companyID, nil)
	if err != nil {
		return nil, err
	}
	resolved, err := s.repo.CountResolved(ctx, companyID, nil)
	if err != nil {
		return nil, err
	}
	agreements, err := s.repo.CountByOutcome(ctx, companyID, models.OutcomeAgreement, nil)
	if err != nil {
		return nil, err
	}
	escalations, err := s.repo.CountByOutcome(ctx, companyID, models.OutcomeEscalated, nil)
	if err != nil {
		return nil, err
	}
	abandonments, err := s.repo.CountByOutcome(ctx, companyID, models.OutcomeAbandoned, nil)
	if err != nil {
		return nil, err
	}
	avgMinutes, err := s.repo.AvgResolutionMinutes(ctx, companyID)
	if err != nil {
		return nil, err
	}

	metrics := &analytics.GeneralMetrics{
		ActiveNegotiations:   int(active),
		TotalNegotiations:    int(total),
		AISuccessRate:        analytics.SuccessRate(agreements, resolved),
		Escalations:          int(escalations),
		AvgResolutionTime:    avgMinutes,
		CustomerSatisfaction: analytics.SatisfactionScore(agreements, escalations, abandonments),
	}

	if raw, err := json.Marshal(metrics); err == nil {
		s.cache.Set(ctx, key, raw, metricsCacheTTL)
	}
	return metrics, nil
}

// GetTrend classifies the rolling 7-day success rate against the previous
// 7-day window. Pure recomputation over the event log, never cached.
func (s *AnalyticsService) GetTrend(ctx context.Context, companyID uuid.UUID) (*analytics.TrendReport, error) {
	now := s.now()

	current, err := s.windowRate(ctx, companyID, now.AddDate(0, 0, -7), now)
	if err != nil {
		return nil, err
	}
	previous, err := s.windowRate(ctx, companyID, now.AddDate(0, 0, -14), now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	return &analytics.TrendReport{
		CurrentRate:  current,
		PreviousRate: previous,
		Trend:        analytics.ClassifyTrend(current, previous),
	}, nil
}

func (s *AnalyticsService) windowRate(ctx context.Context, companyID uuid.UUID, start, end time.Time) (int, error) {
	window := &analytics.DateRange{Start: start, End: end, Field: "created_at"}

	resolved, err := s.repo.CountResolved(ctx, companyID, window)
	if err != nil {
		return 0, err
	}
	agreements, err := s.repo.CountByOutcome(ctx, companyID, models.OutcomeAgreement, window)
	if err != nil {
		return 0, err
	}
	return analytics.SuccessRate(agreements, resolved), nil
}
