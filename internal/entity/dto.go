package entity

// CreateSessionRequest starts a new study session. All fields are
// optional overrides of the configured defaults.
type CreateSessionRequest struct {
	Model    string `json:"model,omitempty"`
	Language string `json:"language,omitempty"`
}

// SessionResponse describes a session to the caller.
type SessionResponse struct {
	ID        string `json:"id"`
	Model     string `json:"model"`
	Language  string `json:"language"`
	Limit     int    `json:"limit"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
	Turns     int    `json:"turns"`
}

// SheetResponse carries a generated revision sheet.
type SheetResponse struct {
	Text        string `json:"text"`
	DocumentURL string `json:"document_url,omitempty"`
	FileName    string `json:"file_name,omitempty"`
	Remaining   int    `json:"remaining"`
}

// ChatRequest is one tutoring message from the user.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the tutor's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
	Turns int    `json:"turns"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
