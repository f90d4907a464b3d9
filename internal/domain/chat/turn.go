// Package chat provides conversation domain models and the session policy.
package chat

import "time"

// Role identifies the author of a turn.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Turn is a single message exchange unit, either user-authored or
// model-generated, with content and timestamp.
type Turn struct {
	Role      Role
	Content   string
	Timestamp time.Time
}

// Transcript is the ordered turn sequence of one conversation, oldest first.
type Transcript []Turn

// UserTurn builds a user-authored turn.
func UserTurn(content string, at time.Time) Turn {
	return Turn{Role: RoleUser, Content: content, Timestamp: at}
}

// BotTurn builds a model-generated turn.
func BotTurn(content string, at time.Time) Turn {
	return Turn{Role: RoleBot, Content: content, Timestamp: at}
}
