package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ChamsBouzaiene/couch/internal/engine"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// AnthropicClient implements engine.LLMClient by calling the Anthropic
// Messages API.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicClient creates a new Anthropic client. baseURL may be empty for
// the official API.
func NewAnthropicClient(apiKey, modelName, baseURL string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}

	return &AnthropicClient{
		client: anthropic.NewClient(apiKey, opts...),
		model:  modelName,
	}, nil
}

// Model returns the configured model name.
func (c *AnthropicClient) Model() string { return c.model }

// Chat implements engine.LLMClient.Chat.
// The Messages API has no frequency or presence penalty; those options are
// ignored. It also rejects whitespace-only stop sequences, so those are
// applied to the returned text instead.
func (c *AnthropicClient) Chat(ctx context.Context, modelName string, messages []engine.ChatMessage, opts engine.ChatOptions) (engine.LLMResponse, error) {
	if modelName == "" {
		modelName = c.model
	}

	var systemParts []anthropic.MessageSystemPart
	var anthropicMsgs []anthropic.Message

	for _, msg := range messages {
		if err := msg.Validate(); err != nil {
			return engine.LLMResponse{}, err
		}
		switch msg.Role {
		case engine.RoleSystem:
			systemParts = append(systemParts, anthropic.MessageSystemPart{
				Type: "text",
				Text: msg.Content,
			})
		case engine.RoleUser:
			anthropicMsgs = append(anthropicMsgs, anthropic.NewUserTextMessage(msg.Content))
		case engine.RoleAssistant:
			anthropicMsgs = append(anthropicMsgs, anthropic.NewAssistantTextMessage(msg.Content))
		}
	}

	maxTokens := 1024
	if opts.MaxOutputTokens > 0 {
		maxTokens = opts.MaxOutputTokens
	}

	temperature := opts.Temperature
	req := anthropic.MessagesRequest{
		Model:       anthropic.Model(modelName),
		Messages:    anthropicMsgs,
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	}
	if opts.TopP > 0 && opts.TopP < 1 {
		topP := opts.TopP
		req.TopP = &topP
	}

	serverStops, localStops := splitStops(opts.Stop)
	if len(serverStops) > 0 {
		req.StopSequences = serverStops
	}
	if len(systemParts) > 0 {
		req.MultiSystem = systemParts
	}

	resp, err := c.client.CreateMessages(ctx, req)
	if err != nil {
		return engine.LLMResponse{}, engine.WrapServiceError("anthropic", err, anthropicStatusOf(err))
	}

	var text strings.Builder
	found := false
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			text.WriteString(*block.Text)
			found = true
		}
	}
	if !found {
		return engine.LLMResponse{}, engine.WrapServiceError("anthropic", engine.ErrEmptyResponse, 0)
	}

	content, cut := truncateAtStops(strings.TrimLeft(text.String(), "\n"), localStops)

	finishReason := "stop"
	if string(resp.StopReason) == "max_tokens" && !cut {
		finishReason = "length"
	}

	return engine.LLMResponse{
		Assistant: engine.ChatMessage{
			Role:    engine.RoleAssistant,
			Content: content,
		},
		Usage: engine.Usage{
			Prompt:     resp.Usage.InputTokens,
			Completion: resp.Usage.OutputTokens,
			Total:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
		FinishReason: finishReason,
	}, nil
}

// splitStops separates stop sequences the API accepts from whitespace-only
// ones that must be enforced locally.
func splitStops(stops []string) (server, local []string) {
	for _, s := range stops {
		if s == "" {
			continue
		}
		if strings.TrimSpace(s) == "" {
			local = append(local, s)
		} else {
			server = append(server, s)
		}
	}
	return server, local
}

// truncateAtStops cuts text at the earliest occurrence of any stop sequence.
func truncateAtStops(text string, stops []string) (string, bool) {
	cut := -1
	for _, s := range stops {
		if i := strings.Index(text, s); i >= 0 && (cut < 0 || i < cut) {
			cut = i
		}
	}
	if cut < 0 {
		return text, false
	}
	return text[:cut], true
}

func anthropicStatusOf(err error) int {
	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) && reqErr.StatusCode != 0 {
		return reqErr.StatusCode
	}
	return statusFromText(err)
}
