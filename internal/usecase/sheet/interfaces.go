package sheet

import (
	"context"

	"github.com/memomaster/backend/internal/entity"
)

// Completer is the external generation service.
type Completer interface {
	Complete(ctx context.Context, messages []entity.ChatMessage, opts entity.GenerationOptions) (string, error)
}
