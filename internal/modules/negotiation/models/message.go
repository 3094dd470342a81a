package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Message sender types.
const (
	SenderDebtor      = "debtor"
	SenderAIAssistant = "ai_assistant"
	SenderHumanAgent  = "human_agent"
)

// Message is one turn in a conversation. Messages are append-only and are
// never mutated after creation.
type Message struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ConversationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderType     string         `gorm:"type:text;not null" json:"sender_type"`
	Content        string         `gorm:"type:text;not null" json:"content"`
	Metadata       datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`

	// Relationship
	Conversation Conversation `gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (Message) TableName() string {
	return "negotiation_messages"
}

// BeforeCreate sets UUID before creating
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MessageMetadata is the analysis snapshot stored alongside AI messages.
type MessageMetadata struct {
	Intent               string   `json:"intent,omitempty"`
	Sentiment            string   `json:"sentiment,omitempty"`
	SentimentScore       float64  `json:"sentiment_score,omitempty"`
	Keywords             []string `json:"keywords,omitempty"`
	Confidence           float64  `json:"confidence,omitempty"`
	ResponseType         string   `json:"response_type,omitempty"`
	PersonalizationLevel string   `json:"personalization_level,omitempty"`
	EscalationTriggered  bool     `json:"escalation_triggered,omitempty"`
	EscalationReason     string   `json:"escalation_reason,omitempty"`
}
