package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Proposal holds the payment terms under negotiation. The negotiation core
// treats it as read-only; only numeric fields are consulted to compute
// discount and term offers.
type Proposal struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyID         uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	DebtorID          uuid.UUID `gorm:"type:uuid;not null;index" json:"debtor_id"`
	TotalAmount       float64   `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	Installments      int       `gorm:"not null;default:1" json:"installments"`
	InstallmentAmount float64   `gorm:"type:numeric(14,2);not null" json:"installment_amount"`
	Status            string    `gorm:"type:text;not null;default:'open'" json:"status"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Proposal) TableName() string {
	return "proposals"
}

// BeforeCreate sets UUID before creating
func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
