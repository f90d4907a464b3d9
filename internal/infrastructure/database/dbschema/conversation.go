package dbschema

import (
	"time"

	"taborra-server/whatsapp-bridge/internal/domain/chat"
	"taborra-server/whatsapp-bridge/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Conversation{})
	database.RegisterSchemaForAutoMigrate(Message{})
}

// Conversation represents the database schema for conversations
type Conversation struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	UserID    uint       `gorm:"index:idx_conversation_user_started;not null"`
	User      User       `gorm:"foreignKey:UserID"`
	StartedAt time.Time  `gorm:"index:idx_conversation_user_started;not null"`
	EndedAt   *time.Time `gorm:"type:timestamp"`
	IsActive  bool       `gorm:"not null;default:true"`

	Messages []Message `gorm:"foreignKey:ConversationID"`
}

// Message represents the database schema for messages
type Message struct {
	ID             uint         `gorm:"primaryKey;autoIncrement"`
	ConversationID uint         `gorm:"index:idx_message_conversation_timestamp;not null"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID"`
	Sender         string       `gorm:"type:varchar(20);not null"`
	Content        string       `gorm:"type:text;not null"`
	Timestamp      time.Time    `gorm:"column:timestamp;index:idx_message_conversation_timestamp;not null"`
	Type           string       `gorm:"column:type;type:varchar(20);not null;default:'text'"`
}

// EtoD converts the schema model into its domain conversation.
func (c *Conversation) EtoD() *chat.Conversation {
	return &chat.Conversation{
		ID:        c.ID,
		UserID:    c.UserID,
		StartedAt: c.StartedAt,
		EndedAt:   c.EndedAt,
		IsActive:  c.IsActive,
	}
}
