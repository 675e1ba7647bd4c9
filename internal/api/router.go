package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires all application routes onto a chi router.
func NewRouter(chatHandler *ChatHandler, fileHandler *FileHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The frontend is a local SPA served from its own dev port.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// Liveness probe.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Standard CRUD routes get a request timeout so connections
		// cannot hang indefinitely.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/files", fileHandler.List)
			r.Post("/files", fileHandler.Upload)
			r.Delete("/files/{fileID}", fileHandler.Delete)

			r.Get("/threads", chatHandler.GetThreads)
			r.Get("/threads/{threadID}", chatHandler.GetThread)
			r.Delete("/threads/{threadID}", chatHandler.DeleteThread)
		})

		// A turn holds the connection for the whole gateway round trip;
		// its deadline is the gateway client's own timeout, not the
		// router's.
		r.Group(func(r chi.Router) {
			r.Post("/threads/messages", chatHandler.SendMessage)
		})
	})

	return r
}
