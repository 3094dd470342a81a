package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cobranzia/debt-negotiation-be/internal/core/analytics"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/models"
)

type AnalyticsRepo interface {
	InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error
	CountConversations(ctx context.Context, companyID uuid.UUID, statuses []string) (int64, error)
	CountResolved(ctx context.Context, companyID uuid.UUID, dateRange *analytics.DateRange) (int64, error)
	CountByOutcome(ctx context.Context, companyID uuid.UUID, outcome string, dateRange *analytics.DateRange) (int64, error)
	AvgResolutionMinutes(ctx context.Context, companyID uuid.UUID) (float64, error)
}

type analyticsRepo struct {
	db         *gorm.DB
	aggregator *analytics.Aggregator
}

func NewAnalyticsRepo(db *gorm.DB) AnalyticsRepo {
	return &analyticsRepo{db: db, aggregator: analytics.NewAggregator(db)}
}

func (r *analyticsRepo) InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *analyticsRepo) CountConversations(ctx context.Context, companyID uuid.UUID, statuses []string) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Conversation{}).Where("company_id = ?", companyID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *analyticsRepo) CountResolved(ctx context.Context, companyID uuid.UUID, dateRange *analytics.DateRange) (int64, error) {
	return r.aggregator.Count(models.AnalyticsEvent{}.TableName(), map[string]interface{}{
		"company_id": companyID,
		"event_type": models.EventNegotiationResolved,
	}, dateRange)
}

func (r *analyticsRepo) CountByOutcome(ctx context.Context, companyID uuid.UUID, outcome string, dateRange *analytics.DateRange) (int64, error) {
	return r.aggregator.Count(models.AnalyticsEvent{}.TableName(), map[string]interface{}{
		"company_id": companyID,
		"outcome":    outcome,
	}, dateRange)
}

func (r *analyticsRepo) AvgResolutionMinutes(ctx context.Context, companyID uuid.UUID) (float64, error) {
	return r.aggregator.Average(models.AnalyticsEvent{}.TableName(), "conversation_duration_minutes", map[string]interface{}{
		"company_id": companyID,
		"event_type": models.EventNegotiationResolved,
	})
}
