package model

import "time"

// Supported document MIME types. Anything else is rejected at upload time.
const (
	MimePDF      = "application/pdf"
	MimeMarkdown = "text/markdown"
	MimePlain    = "text/plain"
)

// WelcomeMessageID marks the synthetic greeting a client may prepend to a
// thread view. It is never persisted and never included in a model request.
const WelcomeMessageID = "welcome"

// TokenUsage carries the provider-reported token counters for one exchange.
// The values are stored verbatim; TotalTokens is not checked against the sum.
type TokenUsage struct {
	PromptTokens   int `json:"promptTokens"`
	ResponseTokens int `json:"responseTokens"`
	TotalTokens    int `json:"totalTokens"`
}

// Message is a single entry in a chat thread.
type Message struct {
	ID        string      `json:"id"`
	Role      string      `json:"role"` // "user" or "model"
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
	Usage     *TokenUsage `json:"usage,omitempty"`
	Citations []string    `json:"citations,omitempty"`
}

// StoredFile is an uploaded reference document. Content holds the raw bytes;
// encoding/json renders it as base64 on the wire, which is also the shape the
// model gateway expects for binary attachments. Size must equal len(Content).
type StoredFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	Content  []byte `json:"content"`
}

// FileInfo is the listing view of a StoredFile, without the content payload.
type FileInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// Info strips the content from a StoredFile for listing responses.
func (f *StoredFile) Info() FileInfo {
	return FileInfo{ID: f.ID, Name: f.Name, Size: f.Size, MimeType: f.MimeType}
}

// ChatThread is a persisted conversation. Messages are append-only and kept
// in insertion order, which equals timestamp order.
type ChatThread struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	UpdatedAt time.Time `json:"updatedAt"`
}
