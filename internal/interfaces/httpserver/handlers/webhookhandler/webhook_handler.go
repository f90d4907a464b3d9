package webhookhandler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taborra-server/whatsapp-bridge/internal/domain/chat"
	"taborra-server/whatsapp-bridge/internal/domain/user"
	"taborra-server/whatsapp-bridge/internal/infrastructure/logger"
	"taborra-server/whatsapp-bridge/internal/interfaces/httpserver/requests/webhook"
	"taborra-server/whatsapp-bridge/internal/interfaces/httpserver/responses"
)

// ReplyGenerator produces a reply for the latest user input given the
// transcript so far.
type ReplyGenerator interface {
	Run(ctx context.Context, transcript chat.Transcript, inputText string) (string, error)
}

// Messenger delivers outbound messages to the provider.
type Messenger interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

// WebhookHandler handles WhatsApp webhook verification and inbound messages.
type WebhookHandler struct {
	verifyToken string
	users       *user.Service
	sessions    *chat.Service
	replies     ReplyGenerator
	messenger   Messenger
}

func NewWebhookHandler(
	verifyToken string,
	users *user.Service,
	sessions *chat.Service,
	replies ReplyGenerator,
	messenger Messenger,
) *WebhookHandler {
	return &WebhookHandler{
		verifyToken: verifyToken,
		users:       users,
		sessions:    sessions,
		replies:     replies,
		messenger:   messenger,
	}
}

// Verify answers the webhook GET handshake: mode must be "subscribe", the
// token must match the configured secret and an integer challenge must be
// present. Success echoes the challenge as an integer.
func (h *WebhookHandler) Verify(c *gin.Context) {
	var query webhook.VerificationQuery
	_ = c.ShouldBindQuery(&query)

	if query.Mode != "subscribe" || query.VerifyToken != h.verifyToken || query.Challenge == "" {
		c.JSON(http.StatusForbidden, responses.ErrorResponse{Error: "verification failed"})
		return
	}

	challenge, err := strconv.Atoi(query.Challenge)
	if err != nil {
		c.JSON(http.StatusForbidden, responses.ErrorResponse{Error: "verification failed"})
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// Receive runs the inbound pipeline: normalize, ensure user, resolve the
// session, generate the reply, deliver it, persist the two new turns.
// Malformed or status-only payloads are dropped with 200 so the platform
// does not retry them.
func (h *WebhookHandler) Receive(c *gin.Context) {
	log := logger.GetLogger()

	var payload webhook.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Warn().Err(err).Msg("dropping malformed webhook payload")
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	inbound := webhook.Parse(payload)
	if !inbound.Success {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()

	usr, err := h.users.EnsureUser(ctx, inbound.FullName, inbound.Phone)
	if err != nil {
		responses.HandleError(c, err, "failed to process message")
		return
	}

	conv, transcript, err := h.sessions.ResolveActiveConversation(ctx, usr.ID, now)
	if err != nil {
		responses.HandleError(c, err, "failed to process message")
		return
	}

	reply, err := h.replies.Run(ctx, transcript, inbound.Text)
	if err != nil {
		responses.HandleError(c, err, "failed to generate reply")
		return
	}

	// Delivery failure is logged but never fails the webhook response; the
	// platform must not retry the event.
	if _, err := h.messenger.SendText(ctx, inbound.Phone, reply); err != nil {
		log.Error().Err(err).Str("to", inbound.Phone).Msg("outbound delivery failed")
	}

	turns := chat.Transcript{
		chat.UserTurn(inbound.Text, now),
		chat.BotTurn(reply, time.Now().UTC()),
	}
	if err := h.sessions.AppendTurns(ctx, conv.ID, turns); err != nil {
		responses.HandleError(c, err, "failed to persist turns")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
