// Package stub implements an in-memory double of the flashcard-set
// management API so the harness can be exercised without the real backend.
package stub

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler holds all API handler state.
type Handler struct {
	store *MemoryStore
	token string
}

// NewHandler creates a new API handler. When token is non-empty, every
// route except the public listing requires it as a bearer credential.
func NewHandler(s *MemoryStore, token string) *Handler {
	return &Handler{store: s, token: token}
}

// Store exposes the underlying store, mainly for tests and seeding.
func (h *Handler) Store() *MemoryStore { return h.store }

// Router mounts the /api/v1 routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		// The public listing is reachable without credentials.
		r.Get("/flashcard-sets/public", h.ListPublicSets)

		r.Group(func(r chi.Router) {
			r.Use(h.requireBearer)

			r.Get("/auth/me", h.Me)

			r.Get("/flashcard-sets", h.ListSets)
			r.Post("/flashcard-sets", h.CreateSet)
			r.Get("/flashcard-sets/{id}", h.GetSet)
			r.Put("/flashcard-sets/{id}", h.UpdateSet)
			r.Delete("/flashcard-sets/{id}", h.DeleteSet)
			r.Get("/flashcard-sets/{id}/stats", h.SetStats)
			r.Post("/flashcard-sets/{id}/duplicate", h.DuplicateSet)

			r.Post("/processor/text", h.ProcessText)
			r.Post("/processor/url", h.ProcessURL)
			r.Get("/processor/task/{taskId}", h.TaskStatus)
		})
	})
	return r
}

// requireBearer rejects requests whose Authorization header does not carry
// the configured bearer token.
func (h *Handler) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.token != "" {
			got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if got != h.token {
				writeError(w, http.StatusUnauthorized, "invalid or missing bearer token")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
