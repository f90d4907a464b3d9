package dbschema_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taborra-server/whatsapp-bridge/internal/domain/chat"
	"taborra-server/whatsapp-bridge/internal/infrastructure/database/dbschema"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	now := time.Now().UTC()
	turns := chat.Transcript{
		chat.UserTurn("Hola", now.Add(-2*time.Minute)),
		chat.BotTurn("¡Hola! ¿En qué puedo ayudarte?", now.Add(-1*time.Minute)),
		chat.UserTurn("Quiero consultar mi factura", now),
	}

	rows := dbschema.EncodeTurns(12, turns, now)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, uint(12), row.ConversationID)
		assert.Equal(t, "text", row.Type)
	}

	decoded := dbschema.DecodeTranscript(rows)
	require.Len(t, decoded, 3)
	for i := range turns {
		assert.Equal(t, turns[i].Role, decoded[i].Role)
		assert.Equal(t, turns[i].Content, decoded[i].Content)
	}
}

func TestEncodeTurns_NormalizesZeroTimestamp(t *testing.T) {
	now := time.Now().UTC()

	rows := dbschema.EncodeTurns(1, chat.Transcript{{Role: chat.RoleBot, Content: "hola"}}, now)
	require.Len(t, rows, 1)
	assert.Equal(t, now, rows[0].Timestamp)
}

func TestDecodeTranscript_SkipsJoinArtifacts(t *testing.T) {
	rows := []dbschema.Message{
		{Sender: "", Content: ""},
		{Sender: "user", Content: "Hola", Timestamp: time.Now()},
		{Sender: "bot", Content: "", Timestamp: time.Now()},
	}

	decoded := dbschema.DecodeTranscript(rows)
	require.Len(t, decoded, 1)
	assert.Equal(t, chat.RoleUser, decoded[0].Role)
}

func TestDecodeTranscript_UnknownSenderIsBot(t *testing.T) {
	rows := []dbschema.Message{
		{Sender: "assistant", Content: "hola", Timestamp: time.Now()},
	}

	decoded := dbschema.DecodeTranscript(rows)
	require.Len(t, decoded, 1)
	assert.Equal(t, chat.RoleBot, decoded[0].Role)
}
