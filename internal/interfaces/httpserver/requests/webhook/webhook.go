// Package webhook declares the WhatsApp webhook wire format and normalizes
// inbound events.
package webhook

// VerificationQuery carries the hub parameters of the webhook GET handshake.
type VerificationQuery struct {
	Mode        string `form:"hub.mode"`
	Challenge   string `form:"hub.challenge"`
	VerifyToken string `form:"hub.verify_token"`
}

// Payload is the top-level webhook POST body sent by the platform.
type Payload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Value Value  `json:"value"`
	Field string `json:"field"`
}

type Value struct {
	MessagingProduct string            `json:"messaging_product"`
	Metadata         Metadata          `json:"metadata"`
	Contacts         []Contact         `json:"contacts,omitempty"`
	Messages         []IncomingMessage `json:"messages,omitempty"`
}

type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

type Contact struct {
	Profile Profile `json:"profile"`
	WaID    string  `json:"wa_id"`
}

type Profile struct {
	Name string `json:"name"`
}

type IncomingMessage struct {
	From      string       `json:"from"`
	ID        string       `json:"id"`
	Timestamp string       `json:"timestamp"`
	Type      string       `json:"type"`
	Text      *TextMessage `json:"text,omitempty"`
}

type TextMessage struct {
	Body string `json:"body"`
}

// InboundMessage is the normalized inbound-message record handed to the
// pipeline.
type InboundMessage struct {
	Success  bool
	Phone    string
	FullName string
	Text     string
}

// Parse flattens the first text message of the payload. Status-only or
// non-text deliveries yield Success=false and are dropped upstream.
func Parse(payload Payload) InboundMessage {
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			value := change.Value
			if len(value.Messages) == 0 {
				continue
			}

			msg := value.Messages[0]
			if msg.Type != "text" || msg.Text == nil {
				continue
			}

			fullName := ""
			if len(value.Contacts) > 0 {
				fullName = value.Contacts[0].Profile.Name
			}

			return InboundMessage{
				Success:  true,
				Phone:    msg.From,
				FullName: fullName,
				Text:     msg.Text.Body,
			}
		}
	}
	return InboundMessage{}
}
