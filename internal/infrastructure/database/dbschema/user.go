package dbschema

import (
	"taborra-server/whatsapp-bridge/internal/domain/user"
	"taborra-server/whatsapp-bridge/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User represents the database schema for users
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	FullName string `gorm:"type:varchar(100);not null"`
	Phone    string `gorm:"type:varchar(30);uniqueIndex;not null"`
	Level    int    `gorm:"not null;default:1"`

	Conversations []Conversation `gorm:"foreignKey:UserID"`
}

// NewSchemaUser converts a domain user into its schema model.
func NewSchemaUser(usr *user.User) *User {
	return &User{
		ID:       usr.ID,
		FullName: usr.FullName,
		Phone:    usr.Phone,
		Level:    usr.Level,
	}
}

// EtoD converts the schema model into its domain user.
func (u *User) EtoD() *user.User {
	return &user.User{
		ID:       u.ID,
		FullName: u.FullName,
		Phone:    u.Phone,
		Level:    u.Level,
	}
}
