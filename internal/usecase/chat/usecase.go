// Package chat maintains the multi-turn tutoring conversation and
// assembles the bounded context window for every new exchange.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/memomaster/backend/internal/config"
	"github.com/memomaster/backend/internal/entity"
	"github.com/memomaster/backend/internal/repository"
	"go.uber.org/zap"
)

const tutorSystemTemplate = "You are a kind and encouraging tutor who helps students revise. " +
	"Keep answers short and concrete. Answer in %s."

// ChatUsecase implements the tutoring conversation logic
type ChatUsecase struct {
	completer Completer
	cfg       config.ChatConfig
	logger    *zap.Logger
}

// NewUsecase creates a new chat use case
func NewUsecase(completer Completer, cfg config.ChatConfig, logger *zap.Logger) *ChatUsecase {
	return &ChatUsecase{
		completer: completer,
		cfg:       cfg,
		logger:    logger,
	}
}

// Respond handles one tutoring exchange. Empty messages are rejected
// before any history mutation. Otherwise a pending turn is appended,
// the generation service is called with the assembled window, and the
// turn is finalized in place with the reply, or with an embedded error
// message when the call fails. The turn is never left pending.
func (uc *ChatUsecase) Respond(ctx context.Context, sess *repository.StudySession, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", entity.ErrEmptyMessage
	}

	prior := sess.Turns()
	index := sess.AppendPendingTurn(message)

	messages := uc.assemble(prior, message, sess.Language)

	ctxzap.Info(ctx, "tutor exchange started",
		zap.String("session_id", sess.ID),
		zap.Int("prior_turns", len(prior)),
		zap.Int("message_count", len(messages)),
	)

	reply, err := uc.completer.Complete(ctx, messages, entity.GenerationOptions{
		Model:       sess.Model,
		Temperature: uc.cfg.Temperature,
	})
	if err != nil {
		ctxzap.Error(ctx, "tutor call failed",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
		reply = fmt.Sprintf("Error: %v", err)
	}

	sess.FinalizeTurn(index, reply)

	return reply, nil
}

// assemble builds [system] + [windowed prior turns as user/assistant
// pairs, in order] + [the new user message].
func (uc *ChatUsecase) assemble(prior []entity.ConversationTurn, message, language string) []entity.ChatMessage {
	if language == "" {
		language = "English"
	}

	window := prior
	if uc.cfg.MaxWindowTurns > 0 && len(window) > uc.cfg.MaxWindowTurns {
		window = window[len(window)-uc.cfg.MaxWindowTurns:]
	}

	messages := make([]entity.ChatMessage, 0, 2*len(window)+2)
	messages = append(messages, entity.ChatMessage{
		Role:    entity.RoleSystem,
		Content: fmt.Sprintf(tutorSystemTemplate, language),
	})
	for _, turn := range window {
		messages = append(messages,
			entity.ChatMessage{Role: entity.RoleUser, Content: turn.User},
			entity.ChatMessage{Role: entity.RoleAssistant, Content: turn.Assistant},
		)
	}
	messages = append(messages, entity.ChatMessage{
		Role:    entity.RoleUser,
		Content: message,
	})

	return messages
}
