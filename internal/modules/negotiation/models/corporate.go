package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CorporateClient is the creditor entity whose policies bound what the AI
// may offer.
type CorporateClient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Industry     string    `gorm:"type:text" json:"industry"`
	Description  string    `gorm:"type:text" json:"description"`
	ContactEmail string    `gorm:"type:text" json:"contact_email"`
	Tone         string    `gorm:"type:text;default:'professional'" json:"tone"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (CorporateClient) TableName() string {
	return "corporate_clients"
}

// BeforeCreate sets UUID before creating
func (c *CorporateClient) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// NegotiationPolicy is the per-client policy ceiling. At most one active
// policy per corporate client is honored.
type NegotiationPolicy struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CorporateClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"corporate_client_id"`

	MaxDiscountPercent int `gorm:"not null;default:15" json:"max_discount_percent"`
	MaxTermMonths      int `gorm:"not null;default:12" json:"max_term_months"`

	// Escalation thresholds
	ConversationLength int `gorm:"not null;default:15" json:"conversation_length"`
	DiscountRequested  int `gorm:"not null;default:20" json:"discount_requested"`
	TimeRequested      int `gorm:"not null;default:18" json:"time_requested"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationship
	CorporateClient CorporateClient `gorm:"foreignKey:CorporateClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (NegotiationPolicy) TableName() string {
	return "negotiation_policies"
}

// BeforeCreate sets UUID before creating
func (p *NegotiationPolicy) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CustomResponse is a corporate-authored response template with flexible
// JSONB content, injected into the personalized prompt.
type CustomResponse struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CorporateClientID uuid.UUID      `gorm:"type:uuid;not null;index:idx_client_trigger" json:"corporate_client_id"`
	Trigger           string         `gorm:"type:text;not null;index:idx_client_trigger" json:"trigger"` // intent that activates it
	Title             string         `gorm:"type:text;not null" json:"title"`
	Content           datatypes.JSON `gorm:"type:jsonb;not null" json:"content"`
	Tags              pq.StringArray `gorm:"type:text[]" json:"tags"`
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationship
	CorporateClient CorporateClient `gorm:"foreignKey:CorporateClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (CustomResponse) TableName() string {
	return "corporate_custom_responses"
}

// BeforeCreate sets UUID before creating
func (r *CustomResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
