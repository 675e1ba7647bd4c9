package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "virginia-ai/backend/internal/errors"
	"virginia-ai/backend/internal/interfaces"
	"virginia-ai/backend/internal/service"
)

// maxUploadMemory is the in-memory budget for parsing a multipart upload;
// larger parts spill to temporary files.
const maxUploadMemory = 64 << 20

// FileHandler handles HTTP requests for the reference-document collection.
type FileHandler struct {
	service interfaces.FileService
}

func NewFileHandler(svc interfaces.FileService) *FileHandler {
	return &FileHandler{service: svc}
}

// Upload accepts a multipart batch under the "files" field. Each file is
// validated and stored independently; the response reports saved and
// rejected files side by side.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid multipart body", app_errors.ErrValidation))
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		respondWithError(w, fmt.Errorf("%w: no files in upload", app_errors.ErrValidation))
		return
	}

	uploads := make([]service.FileUpload, 0, len(headers))
	for _, header := range headers {
		part, err := header.Open()
		if err != nil {
			respondWithError(w, fmt.Errorf("%w: could not read uploaded file %q", app_errors.ErrValidation, header.Filename))
			return
		}
		content, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			respondWithError(w, fmt.Errorf("%w: could not read uploaded file %q", app_errors.ErrValidation, header.Filename))
			return
		}
		uploads = append(uploads, service.FileUpload{
			Name:     header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Content:  content,
		})
	}

	result, err := h.service.Upload(r.Context(), uploads)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// List returns metadata for all stored files.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	files, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, files)
}

// Delete removes a file. Deleting an unknown id succeeds.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	if err := h.service.Delete(r.Context(), fileID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
