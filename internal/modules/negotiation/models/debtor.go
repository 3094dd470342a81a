package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Debtor struct {
	ID                     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName               string    `gorm:"type:text;not null" json:"full_name"`
	Email                  string    `gorm:"type:text" json:"email"`
	Phone                  string    `gorm:"type:text" json:"phone"`
	PreferredContactMethod string    `gorm:"type:text;default:'email'" json:"preferred_contact_method"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Debtor) TableName() string {
	return "debtors"
}

// BeforeCreate sets UUID before creating
func (d *Debtor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Debt is the outstanding obligation a proposal negotiates over.
type Debt struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DebtorID          uuid.UUID `gorm:"type:uuid;not null;index" json:"debtor_id"`
	CorporateClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"corporate_client_id"`
	Amount            float64   `gorm:"type:numeric(14,2);not null" json:"amount"`
	DueDate           time.Time `gorm:"not null" json:"due_date"`
	Status            string    `gorm:"type:text;not null;default:'overdue'" json:"status"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (Debt) TableName() string {
	return "debts"
}

// BeforeCreate sets UUID before creating
func (d *Debt) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DaysOverdue counts full days past the due date as of now. Zero when the
// debt is not yet due.
func (d *Debt) DaysOverdue(now time.Time) int {
	if now.Before(d.DueDate) {
		return 0
	}
	return int(now.Sub(d.DueDate).Hours() / 24)
}

// Payment is one historical payment by a debtor. PaidAt is nil while unpaid.
type Payment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DebtorID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"debtor_id"`
	DebtID    *uuid.UUID `gorm:"type:uuid;index" json:"debt_id,omitempty"`
	Amount    float64    `gorm:"type:numeric(14,2);not null" json:"amount"`
	DueDate   time.Time  `gorm:"not null" json:"due_date"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate sets UUID before creating
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// OnTime reports whether the payment was settled by its due date.
func (p *Payment) OnTime() bool {
	return p.PaidAt != nil && !p.PaidAt.After(p.DueDate)
}

// Late reports whether the payment was settled after its due date or is
// still unpaid past it.
func (p *Payment) Late(now time.Time) bool {
	if p.PaidAt != nil {
		return p.PaidAt.After(p.DueDate)
	}
	return now.After(p.DueDate)
}
