package webhook_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taborra-server/whatsapp-bridge/internal/interfaces/httpserver/requests/webhook"
)

const inboundTextPayload = `{
  "object": "whatsapp_business_account",
  "entry": [{
    "id": "1031",
    "changes": [{
      "field": "messages",
      "value": {
        "messaging_product": "whatsapp",
        "metadata": {"display_phone_number": "5491100000000", "phone_number_id": "1031"},
        "contacts": [{"profile": {"name": "Ana Pérez"}, "wa_id": "5491111"}],
        "messages": [{
          "from": "+5491111",
          "id": "wamid.X",
          "timestamp": "1717171717",
          "type": "text",
          "text": {"body": "Hola"}
        }]
      }
    }]
  }]
}`

const statusOnlyPayload = `{
  "object": "whatsapp_business_account",
  "entry": [{
    "id": "1031",
    "changes": [{
      "field": "messages",
      "value": {
        "messaging_product": "whatsapp",
        "metadata": {"display_phone_number": "5491100000000", "phone_number_id": "1031"}
      }
    }]
  }]
}`

func TestParse_TextMessage(t *testing.T) {
	var payload webhook.Payload
	require.NoError(t, json.Unmarshal([]byte(inboundTextPayload), &payload))

	inbound := webhook.Parse(payload)

	assert.True(t, inbound.Success)
	assert.Equal(t, "+5491111", inbound.Phone)
	assert.Equal(t, "Ana Pérez", inbound.FullName)
	assert.Equal(t, "Hola", inbound.Text)
}

func TestParse_StatusOnlyDelivery(t *testing.T) {
	var payload webhook.Payload
	require.NoError(t, json.Unmarshal([]byte(statusOnlyPayload), &payload))

	inbound := webhook.Parse(payload)

	assert.False(t, inbound.Success)
}

func TestParse_NonTextMessage(t *testing.T) {
	var payload webhook.Payload
	require.NoError(t, json.Unmarshal([]byte(inboundTextPayload), &payload))
	payload.Entry[0].Changes[0].Value.Messages[0].Type = "image"
	payload.Entry[0].Changes[0].Value.Messages[0].Text = nil

	inbound := webhook.Parse(payload)

	assert.False(t, inbound.Success)
}

func TestParse_MissingContactStillSucceeds(t *testing.T) {
	var payload webhook.Payload
	require.NoError(t, json.Unmarshal([]byte(inboundTextPayload), &payload))
	payload.Entry[0].Changes[0].Value.Contacts = nil

	inbound := webhook.Parse(payload)

	assert.True(t, inbound.Success)
	assert.Empty(t, inbound.FullName)
}
