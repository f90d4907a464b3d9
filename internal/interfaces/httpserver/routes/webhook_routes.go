package routes

import (
	"github.com/gin-gonic/gin"

	"taborra-server/whatsapp-bridge/internal/interfaces/httpserver/handlers/webhookhandler"
)

// Provider wires handlers onto the engine.
type Provider struct {
	webhookHandler *webhookhandler.WebhookHandler
}

func NewProvider(webhookHandler *webhookhandler.WebhookHandler) *Provider {
	return &Provider{webhookHandler: webhookHandler}
}

// Register mounts the webhook routes.
func (p *Provider) Register(router gin.IRouter) {
	webhookGroup := router.Group("/webhook")
	webhookGroup.GET("/whatsapp", p.webhookHandler.Verify)
	webhookGroup.POST("/whatsapp", p.webhookHandler.Receive)
}
