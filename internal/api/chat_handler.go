package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "virginia-ai/backend/internal/errors"
	"virginia-ai/backend/internal/interfaces"
	"virginia-ai/backend/internal/service"
)

// ChatHandler handles HTTP requests for threads and turns.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// SendMessage processes one conversational turn and returns the reply along
// with the saved thread snapshot, so the client needs no follow-up fetch.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req service.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	resp, err := h.service.SendMessage(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// GetThreads lists all saved threads, most recently updated first.
func (h *ChatHandler) GetThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.service.ListThreads(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, threads)
}

// GetThread returns one thread with its full message history.
func (h *ChatHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")
	thread, err := h.service.GetThread(r.Context(), threadID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, thread)
}

// DeleteThread removes a thread. Deleting an unknown id succeeds.
func (h *ChatHandler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")
	if err := h.service.DeleteThread(r.Context(), threadID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
