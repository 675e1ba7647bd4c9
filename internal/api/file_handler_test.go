package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"virginia-ai/backend/internal/api"
	app_errors "virginia-ai/backend/internal/errors"
	"virginia-ai/backend/internal/interfaces/mocks"
	"virginia-ai/backend/internal/model"
	"virginia-ai/backend/internal/service"
)

// multipartBody builds a multipart form with one part per file under the
// "files" field, carrying an explicit Content-Type per part.
func multipartBody(t *testing.T, files map[string][]byte, mimeTypes map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="files"; filename="`+name+`"`)
		if mt, ok := mimeTypes[name]; ok {
			header.Set("Content-Type", mt)
		}
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestFileHandler_Upload(t *testing.T) {
	t.Run("Forwards each part with its name, type and content", func(t *testing.T) {
		svc := mocks.NewMockFileService(t)
		handler := api.NewFileHandler(svc)

		var captured []service.FileUpload
		svc.On("Upload", mock.Anything, mock.AnythingOfType("[]service.FileUpload")).
			Run(func(args mock.Arguments) { captured = args.Get(1).([]service.FileUpload) }).
			Return(&service.UploadResult{
				Saved:    []model.FileInfo{{ID: "f1", Name: "notes.md", Size: 7, MimeType: model.MimeMarkdown}},
				Rejected: []service.UploadRejection{},
			}, nil).Once()

		body, contentType := multipartBody(t,
			map[string][]byte{"notes.md": []byte("# Notes")},
			map[string]string{"notes.md": "text/markdown"},
		)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/files", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.Upload(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, captured, 1)
		assert.Equal(t, "notes.md", captured[0].Name)
		assert.Equal(t, "text/markdown", captured[0].MimeType)
		assert.Equal(t, []byte("# Notes"), captured[0].Content)

		var got service.UploadResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got.Saved, 1)
		assert.Equal(t, "notes.md", got.Saved[0].Name)
	})

	t.Run("Partial rejection still returns 200 with both lists", func(t *testing.T) {
		svc := mocks.NewMockFileService(t)
		handler := api.NewFileHandler(svc)

		svc.On("Upload", mock.Anything, mock.Anything).
			Return(&service.UploadResult{
				Saved:    []model.FileInfo{{ID: "f1", Name: "ok.txt", Size: 2, MimeType: model.MimePlain}},
				Rejected: []service.UploadRejection{{Name: "image.png", Reason: "unsupported file type; only PDF, MD and TXT are accepted"}},
			}, nil).Once()

		body, contentType := multipartBody(t,
			map[string][]byte{"ok.txt": []byte("ok"), "image.png": {0x89}},
			map[string]string{"ok.txt": "text/plain", "image.png": "image/png"},
		)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/files", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.Upload(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got service.UploadResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Len(t, got.Saved, 1)
		assert.Len(t, got.Rejected, 1)
	})

	t.Run("Rejects a body that is not multipart", func(t *testing.T) {
		svc := mocks.NewMockFileService(t)
		handler := api.NewFileHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/files", bytes.NewReader([]byte("plain")))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		handler.Upload(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})

	t.Run("Rejects a form without files", func(t *testing.T) {
		svc := mocks.NewMockFileService(t)
		handler := api.NewFileHandler(svc)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("note", "no files here"))
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/files", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		rr := httptest.NewRecorder()

		handler.Upload(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})

	t.Run("Storage failure maps to 500", func(t *testing.T) {
		svc := mocks.NewMockFileService(t)
		handler := api.NewFileHandler(svc)

		svc.On("Upload", mock.Anything, mock.Anything).
			Return(nil, app_errors.ErrStorage).Once()

		body, contentType := multipartBody(t,
			map[string][]byte{"a.txt": []byte("a")},
			map[string]string{"a.txt": "text/plain"},
		)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/files", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.Upload(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestFileHandler_List(t *testing.T) {
	svc := mocks.NewMockFileService(t)
	handler := api.NewFileHandler(svc)

	infos := []model.FileInfo{
		{ID: "f1", Name: "Policy.pdf", Size: 1024, MimeType: model.MimePDF},
	}
	svc.On("List", mock.Anything).Return(infos, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)
	rr := httptest.NewRecorder()

	handler.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []model.FileInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, infos, got)
}

func TestFileHandler_Delete(t *testing.T) {
	svc := mocks.NewMockFileService(t)
	handler := api.NewFileHandler(svc)

	svc.On("Delete", mock.Anything, "f1").Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/files/f1", nil)
	req = addChiURLParams(req, map[string]string{"fileID": "f1"})
	rr := httptest.NewRecorder()

	handler.Delete(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got api.StatusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
}
