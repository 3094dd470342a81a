package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Conversation statuses. "escalated", "agreed", "rejected" and "abandoned"
// are terminal for the AI: no further AI turns are accepted.
const (
	StatusActive      = "active"
	StatusNegotiating = "negotiating"
	StatusEscalated   = "escalated"
	StatusAgreed      = "agreed"
	StatusRejected    = "rejected"
	StatusAbandoned   = "abandoned"
)

// Conversation represents one negotiation thread between a debtor and a
// corporate client over a specific proposal.
type Conversation struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProposalID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"proposal_id"`
	DebtorID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"debtor_id"`
	CompanyID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	CorporateClientID *uuid.UUID `gorm:"type:uuid;index" json:"corporate_client_id,omitempty"`

	Status    string `gorm:"type:text;not null;default:'active';index" json:"status"`
	AIEnabled bool   `gorm:"not null;default:true" json:"ai_enabled"`

	// MessageCount only moves forward, and only when a message has been
	// durably appended.
	MessageCount int `gorm:"not null;default:0" json:"message_count"`

	// Snapshot of the proposal terms and policy limits taken when the
	// negotiation started.
	NegotiationContext datatypes.JSON `gorm:"type:jsonb" json:"negotiation_context"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Conversation) TableName() string {
	return "negotiation_conversations"
}

// BeforeCreate sets UUID before creating
func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Terminal reports whether the conversation accepts no further AI turns.
func (c *Conversation) Terminal() bool {
	switch c.Status {
	case StatusEscalated, StatusAgreed, StatusRejected, StatusAbandoned:
		return true
	}
	return false
}
