package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DeepSeek exposes an OpenAI-compatible chat completions API, so the client
// is the openai SDK pointed at its base URL.
type DeepSeekClient struct {
	client openai.Client
	model  string
}

func NewDeepSeekClient(apiKey, model, baseURL string) *DeepSeekClient {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = "deepseek-chat"
	}
	return &DeepSeekClient{client: openai.NewClient(opts...), model: model}
}

func (c *DeepSeekClient) Chat(ctx context.Context, messages []Message) (string, error) {
	oaiMsgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			oaiMsgs = append(oaiMsgs, openai.SystemMessage(m.Content))
		case "assistant":
			oaiMsgs = append(oaiMsgs, openai.AssistantMessage(m.Content))
		default:
			oaiMsgs = append(oaiMsgs, openai.UserMessage(m.Content))
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    oaiMsgs,
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(256),
	})
	if err != nil {
		return "", fmt.Errorf("deepseek chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("deepseek chat: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
