package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/memomaster/backend/internal/config"
	"github.com/memomaster/backend/internal/entity"
	pkghttp "github.com/memomaster/backend/pkg/http"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type Connector struct {
	config config.OpenAIConfig
	client *openai.Client
	logger *zap.Logger
}

func NewConnector(cfg config.OpenAIConfig, logger *zap.Logger) *Connector {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = pkghttp.NewClient(
		pkghttp.WithRequestTimeout(cfg.RequestTimeout),
		pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
		pkghttp.WithClientKeepAlive(cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
	)

	return &Connector{
		config: cfg,
		client: openai.NewClientWithConfig(clientConfig),
		logger: logger,
	}
}

// Complete sends the message list to the chat completion endpoint and
// returns the generated text. No retries are performed: a failed call
// is surfaced to the caller immediately.
func (c *Connector) Complete(ctx context.Context, messages []entity.ChatMessage, opts entity.GenerationOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.config.Model
	}

	ctxzap.Info(ctx, "requesting completion",
		zap.String("model", model),
		zap.Int("message_count", len(messages)),
	)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    convertMessages(messages),
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	ctxzap.Info(ctx, "completion received", zap.Int("result_length", len(text)))

	return text, nil
}

func convertMessages(messages []entity.ChatMessage) []openai.ChatCompletionMessage {
	converted := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		converted = append(converted, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return converted
}
