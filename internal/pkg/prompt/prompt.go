// Package prompt builds the message lists sent to the generation service.
package prompt

import (
	"fmt"
	"strings"

	"github.com/memomaster/backend/internal/entity"
)

// DefaultTitle is substituted when the caller supplies no course title.
const DefaultTitle = "Untitled course"

const sheetSystemTemplate = "You are an assistant that writes clear, well-structured revision sheets " +
	"for students. Every sheet has the following sections, in order: learning objectives, " +
	"key concepts, methods, worked examples, common mistakes, and a short quiz. " +
	"Use headings and bullet points; write formulas as plain text. Answer in %s."

const sheetUserTemplate = "Write a clear and concise revision sheet for the course \"%s\" based on:\n\n%s"

// Builder assembles revision sheet generation requests. The content
// bound guards against embedding arbitrarily large uploads into a
// single request.
type Builder struct {
	maxContentRunes int
}

func NewBuilder(maxContentRunes int) *Builder {
	return &Builder{maxContentRunes: maxContentRunes}
}

// BuildSheet produces the message list for one revision sheet request:
// a single leading system message followed by one user message carrying
// the course title and the extracted content. Empty or whitespace-only
// content is rejected with ErrEmptyContent before anything is built.
func (b *Builder) BuildSheet(content, title, language string) ([]entity.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, entity.ErrEmptyContent
	}

	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	if language == "" {
		language = "English"
	}

	return []entity.ChatMessage{
		{
			Role:    entity.RoleSystem,
			Content: fmt.Sprintf(sheetSystemTemplate, language),
		},
		{
			Role:    entity.RoleUser,
			Content: fmt.Sprintf(sheetUserTemplate, title, b.truncate(content)),
		},
	}, nil
}

func (b *Builder) truncate(content string) string {
	if b.maxContentRunes <= 0 {
		return content
	}
	runes := []rune(content)
	if len(runes) <= b.maxContentRunes {
		return content
	}
	return string(runes[:b.maxContentRunes])
}
