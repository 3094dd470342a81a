package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Analytics outcomes.
const (
	OutcomeAgreement = "agreement"
	OutcomeEscalated = "escalated"
	OutcomeAbandoned = "abandoned"
)

// Analytics event types.
const (
	EventNegotiationStarted  = "negotiation_started"
	EventNegotiationResolved = "negotiation_resolved"
	EventNegotiationTurn     = "negotiation_turn"
)

// AnalyticsEvent is a terminal or milestone record. Events are append-only
// and aggregated, never mutated.
type AnalyticsEvent struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	ProposalID *uuid.UUID `gorm:"type:uuid;index" json:"proposal_id,omitempty"`
	EventType  string     `gorm:"type:text;not null;index" json:"event_type"`
	Outcome    *string    `gorm:"type:text;index" json:"outcome,omitempty"`

	ConversationDurationMinutes int `gorm:"not null;default:0" json:"conversation_duration_minutes"`
	AIMessages                  int `gorm:"not null;default:0" json:"ai_messages"`

	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (AnalyticsEvent) TableName() string {
	return "negotiation_analytics_events"
}

// BeforeCreate sets UUID before creating
func (e *AnalyticsEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
