package entity

import "time"

// DocumentFormat identifies the declared format of an uploaded document,
// inferred from the filename extension.
type DocumentFormat string

const (
	FormatText    DocumentFormat = "text"
	FormatPDF     DocumentFormat = "pdf"
	FormatWord    DocumentFormat = "word"
	FormatUnknown DocumentFormat = "unknown"
)

// UploadedDocument is a course document received from the upload boundary.
// It is immutable once constructed and discarded after extraction.
type UploadedDocument struct {
	Filename string
	Data     []byte
	Format   DocumentFormat
}

// MessageRole is a chat message role as understood by the generation service.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatMessage is a single role-tagged message in a generation request.
type ChatMessage struct {
	Role    MessageRole
	Content string
}

// GenerationOptions carries the sampling parameters for one generation call.
type GenerationOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// ResultFormat selects the output document type for a rendered sheet.
type ResultFormat string

const (
	ResultFormatPDF      ResultFormat = "pdf"
	ResultFormatDOCX     ResultFormat = "docx"
	ResultFormatMarkdown ResultFormat = "md"
)

// RenderedDocument is a sheet written to disk, ready for download.
type RenderedDocument struct {
	FileName    string
	Path        string
	ContentType string
	Size        int64
}

// SheetResult is the outcome of one revision sheet generation.
// Document is nil when rendering failed or was skipped; Text is
// always set on success.
type SheetResult struct {
	Text     string
	Document *RenderedDocument
}

// ConversationTurn is one user/assistant exchange, insertion-ordered.
// Assistant holds PendingReply between submission and completion.
type ConversationTurn struct {
	User      string
	Assistant string
}

// PendingReply marks a turn whose assistant reply has not arrived yet.
// Turns are always finalized before respond() returns, so the sentinel
// is never observable from outside the conversation usecase.
const PendingReply = "…"

// Session is one user's interactive lifetime with the service.
// Quota state and conversation history live here and nowhere else;
// the session disappears when the store evicts it.
type Session struct {
	ID        string
	Model     string
	Language  string
	Limit     int
	CreatedAt time.Time
}
