package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/models"
)

type ConversationRepo interface {
	GetConversation(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	UpdateConversation(ctx context.Context, conv *models.Conversation) error
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit int) ([]models.Conversation, error)
	ListStale(ctx context.Context, status string, inactiveSince time.Time, limit int) ([]models.Conversation, error)
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) GetConversation(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.db.WithContext(ctx).First(&conv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepo) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

func (r *conversationRepo) UpdateConversation(ctx context.Context, conv *models.Conversation) error {
	return r.db.WithContext(ctx).Save(conv).Error
}

func (r *conversationRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, limit int) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&conversations).Error
	return conversations, err
}

// ListStale returns conversations still in the given status with no
// activity since the cutoff. Used by the abandonment sweeper.
func (r *conversationRepo) ListStale(ctx context.Context, status string, inactiveSince time.Time, limit int) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", status, inactiveSince).
		Order("updated_at ASC").
		Limit(limit).
		Find(&conversations).Error
	return conversations, err
}
