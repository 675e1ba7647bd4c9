// Package gateway implements the model proxy: the one process that holds
// the provider credential. It accepts the assembled chat payload from the
// client service, forwards it to Gemini, and returns raw text plus usage
// metadata. The credential is read from server-side configuration and never
// appears in any response.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"virginia-ai/backend/internal/llm"
)

// maxRequestBytes bounds the request body. The client ships up to 100 MB of
// raw documents per turn; base64 inflates that by roughly 1.35x, so 200 MB
// leaves headroom.
const maxRequestBytes = 200 << 20

type Handler struct {
	apiKey string
}

// NewRouter builds the gateway's HTTP surface: POST /api/chat plus a
// liveness probe.
func NewRouter(apiKey string) *chi.Mux {
	h := &Handler{apiKey: apiKey}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Post("/api/chat", h.handleChat)

	return r
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if h.apiKey == "" {
		slog.Error("Gateway is missing the provider API key.")
		respondError(w, http.StatusInternalServerError, "Server configuration error: API key is missing.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	var req llm.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if len(req.Contents) == 0 {
		respondError(w, http.StatusBadRequest, "Request contains no contents.")
		return
	}

	resp, err := h.generate(r.Context(), &req)
	if err != nil {
		slog.Error("Upstream model call failed", "error", err)
		// The detailed error stays in the log: upstream messages can
		// reference request internals and must not reach the client.
		respondError(w, http.StatusBadGateway, "Upstream model call failed.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to write gateway response", "error", err)
	}
}

// generate forwards one assembled request to Gemini. The last content is
// the current user turn; everything before it is session history.
func (h *Handler) generate(ctx context.Context, req *llm.GenerateRequest) (*llm.GenerateResponse, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(h.apiKey))
	if err != nil {
		return nil, fmt.Errorf("could not create provider client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(req.Model)
	if req.Config.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.Config.SystemInstruction)},
		}
	}
	temperature := float32(req.Config.Temperature)
	model.GenerationConfig = genai.GenerationConfig{Temperature: &temperature}

	history := make([]*genai.Content, 0, len(req.Contents)-1)
	for _, content := range req.Contents[:len(req.Contents)-1] {
		history = append(history, toGenaiContent(content))
	}

	session := model.StartChat()
	session.History = history

	current := req.Contents[len(req.Contents)-1]
	resp, err := session.SendMessage(ctx, toGenaiParts(current.Parts)...)
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}

	out := &llm.GenerateResponse{Text: collectText(resp)}
	if resp.UsageMetadata != nil {
		out.UsageMetadata = &llm.UsageMetadata{
			PromptTokenCount:     int(resp.UsageMetadata.PromptTokenCount),
			CandidatesTokenCount: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokenCount:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return out, nil
}

func toGenaiContent(content llm.Content) *genai.Content {
	return &genai.Content{
		Role:  content.Role,
		Parts: toGenaiParts(content.Parts),
	}
}

func toGenaiParts(parts []llm.Part) []genai.Part {
	out := make([]genai.Part, 0, len(parts))
	for _, part := range parts {
		if part.InlineData != nil {
			out = append(out, genai.Blob{
				MIMEType: part.InlineData.MimeType,
				Data:     part.InlineData.Data,
			})
			continue
		}
		out = append(out, genai.Text(part.Text))
	}
	return out
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

func respondError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
