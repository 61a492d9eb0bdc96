package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/memomaster/backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector is a canned-response generation service for local runs
// without an API key.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Complete(ctx context.Context, messages []entity.ChatMessage, opts entity.GenerationOptions) (string, error) {
	ctxzap.Info(ctx, "[MOCK] completion requested",
		zap.Int("message_count", len(messages)),
	)

	// The leading system message fixes the persona, so it tells the
	// two flows apart.
	if len(messages) > 0 && strings.Contains(messages[0].Content, "tutor") {
		if last := messages[len(messages)-1]; last.Role == entity.RoleUser {
			return fmt.Sprintf("Good question! Let's look at %q together.", last.Content), nil
		}
		return "How can I help you revise today?", nil
	}

	if len(messages) > 0 {
		return "# Revision sheet\n\n## Learning objectives\n- Understand the uploaded material\n\n" +
			"## Key concepts\n- Mock concept one\n- Mock concept two\n\n" +
			"## Methods\n- Outline, then practice\n\n" +
			"## Worked examples\n- Example derived from the course\n\n" +
			"## Common mistakes\n- Skipping the fundamentals\n\n" +
			"## Short quiz\n1. What is the main topic of this course?", nil
	}

	return "This is a mock reply.", nil
}
