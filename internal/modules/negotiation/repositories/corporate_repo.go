package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/models"
)

type CorporateRepo interface {
	GetClient(ctx context.Context, id uuid.UUID) (*models.CorporateClient, error)
	UpsertPolicy(ctx context.Context, policy *models.NegotiationPolicy) error
	CreateCustomResponse(ctx context.Context, resp *models.CustomResponse) error
}

type corporateRepo struct {
	db *gorm.DB
}

func NewCorporateRepo(db *gorm.DB) CorporateRepo {
	return &corporateRepo{db: db}
}

func (r *corporateRepo) GetClient(ctx context.Context, id uuid.UUID) (*models.CorporateClient, error) {
	var client models.CorporateClient
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// UpsertPolicy deactivates prior active policies for the client and
// inserts the new one as the active ceiling.
func (r *corporateRepo) UpsertPolicy(ctx context.Context, policy *models.NegotiationPolicy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.NegotiationPolicy{}).
			Where("corporate_client_id = ? AND is_active = ?", policy.CorporateClientID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		policy.IsActive = true
		return tx.Create(policy).Error
	})
}

func (r *corporateRepo) CreateCustomResponse(ctx context.Context, resp *models.CustomResponse) error {
	if !resp.IsActive {
		resp.IsActive = true
	}
	return r.db.WithContext(ctx).Create(resp).Error
}
