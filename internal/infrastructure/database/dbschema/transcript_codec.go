package dbschema

import (
	"time"

	"taborra-server/whatsapp-bridge/internal/domain/chat"
)

// DecodeTranscript maps persisted message rows onto an ordered transcript.
// Rows with an empty sender or content are skipped; they occur as join
// artifacts when a conversation has no messages yet. A sender of "user"
// yields a user turn, anything else a bot turn.
func DecodeTranscript(rows []Message) chat.Transcript {
	transcript := make(chat.Transcript, 0, len(rows))
	for _, row := range rows {
		if row.Sender == "" || row.Content == "" {
			continue
		}
		if row.Sender == string(chat.RoleUser) {
			transcript = append(transcript, chat.UserTurn(row.Content, row.Timestamp))
		} else {
			transcript = append(transcript, chat.BotTurn(row.Content, row.Timestamp))
		}
	}
	return transcript
}

// EncodeTurns maps turns onto message rows for the given conversation. The
// content type defaults to "text" and a zero timestamp is replaced by the
// capture time.
func EncodeTurns(conversationID uint, turns chat.Transcript, now time.Time) []Message {
	rows := make([]Message, 0, len(turns))
	for _, turn := range turns {
		ts := turn.Timestamp
		if ts.IsZero() {
			ts = now
		}
		rows = append(rows, Message{
			ConversationID: conversationID,
			Sender:         string(turn.Role),
			Content:        turn.Content,
			Timestamp:      ts,
			Type:           "text",
		})
	}
	return rows
}
