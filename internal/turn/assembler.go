package turn

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"virginia-ai/backend/internal/llm"
	"virginia-ai/backend/internal/model"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// BuildContents assembles the ordered request payload for one conversational
// turn: every prior exchange first, then the current turn carrying one part
// per uploaded document followed by the new prompt. Document content is
// re-sent in full on every turn; nothing is cached on the gateway side.
//
// The caller is responsible for the grounding guard: BuildContents assumes at
// least one file is present.
func BuildContents(files []*model.StoredFile, history []model.Message, prompt string) []llm.Content {
	currentParts := make([]llm.Part, 0, len(files)+1)
	for _, file := range files {
		part, ok := filePart(file)
		if !ok {
			continue
		}
		currentParts = append(currentParts, part)
	}
	currentParts = append(currentParts, llm.Part{Text: prompt})

	contents := make([]llm.Content, 0, len(history)+1)
	for _, msg := range history {
		if msg.ID == model.WelcomeMessageID {
			continue
		}
		role := RoleModel
		if msg.Role == RoleUser {
			role = RoleUser
		}
		contents = append(contents, llm.Content{
			Role:  role,
			Parts: []llm.Part{{Text: msg.Text}},
		})
	}

	return append(contents, llm.Content{Role: RoleUser, Parts: currentParts})
}

// filePart converts one stored document into a content part. PDFs travel as
// inline binary; text and markdown are decoded and wrapped in explicit
// document delimiters. A file whose content cannot be decoded is skipped for
// this turn only, so one corrupt document never aborts the whole request.
func filePart(file *model.StoredFile) (llm.Part, bool) {
	if file.MimeType == model.MimePDF {
		return llm.Part{
			InlineData: &llm.InlineData{
				MimeType: file.MimeType,
				Data:     file.Content,
			},
		}, true
	}

	if !utf8.Valid(file.Content) {
		slog.Warn("Skipping file with undecodable text content for this turn.",
			"file_id", file.ID, "file_name", file.Name)
		return llm.Part{}, false
	}

	text := fmt.Sprintf("\n--- START OF DOCUMENT: %s ---\n%s\n--- END OF DOCUMENT ---\n",
		file.Name, string(file.Content))
	return llm.Part{Text: text}, true
}
