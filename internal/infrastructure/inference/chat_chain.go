// Package inference calls the chat-completions provider to generate replies.
package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"taborra-server/whatsapp-bridge/internal/domain/chat"
	"taborra-server/whatsapp-bridge/internal/domain/prompt"
	"taborra-server/whatsapp-bridge/internal/utils/platformerrors"
)

const temperature = 0.3

// ChatChain generates a reply for the latest user turn given the transcript
// so far. It holds no per-conversation state; every call carries its own
// transcript.
type ChatChain struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	model   string
}

func NewChatChain(client *resty.Client, baseURL, apiKey, model string) *ChatChain {
	return &ChatChain{
		client:  client,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

// Run returns the generated reply text for inputText in the context of the
// transcript.
func (c *ChatChain) Run(ctx context.Context, transcript chat.Transcript, inputText string) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages:    c.buildMessages(transcript, inputText),
	}

	var respBody openai.ChatCompletionResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", c.apiKey)).
		SetBody(request).
		SetResult(&respBody).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"chat completion request failed", err, "")
	}
	if resp.IsError() {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("chat completion request failed: %s", strings.TrimSpace(resp.String())), nil, "")
	}
	if len(respBody.Choices) == 0 {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"chat completion response contained no choices", nil, "")
	}

	return respBody.Choices[0].Message.Content, nil
}

// buildMessages keeps the original chain layout: transcript, then the new
// user input, then the system template.
func (c *ChatChain) buildMessages(transcript chat.Transcript, inputText string) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(transcript)+2)
	for _, turn := range transcript {
		role := openai.ChatMessageRoleUser
		if turn.Role == chat.RoleBot {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: inputText,
	})
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: prompt.AssistantBaseTemplate,
	})
	return messages
}
