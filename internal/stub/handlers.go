package stub

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Me handles GET /api/v1/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"user": h.store.User()})
}

// ListSets handles GET /api/v1/flashcard-sets.
func (h *Handler) ListSets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"flashcardSets": h.store.ListSets(false)})
}

// ListPublicSets handles GET /api/v1/flashcard-sets/public.
func (h *Handler) ListPublicSets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"flashcardSets": h.store.ListSets(true)})
}

// GetSet handles GET /api/v1/flashcard-sets/{id}.
func (h *Handler) GetSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	set, ok := h.store.GetSet(id)
	if !ok {
		writeError(w, http.StatusNotFound, "flashcard set not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"flashcardSet": set})
}

// SetStats handles GET /api/v1/flashcard-sets/{id}/stats.
func (h *Handler) SetStats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	set, ok := h.store.GetSet(id)
	if !ok {
		writeError(w, http.StatusNotFound, "flashcard set not found")
		return
	}
	byDifficulty := map[string]int{}
	for _, c := range set.Flashcards {
		byDifficulty[c.Difficulty]++
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats": map[string]any{
			"cardCount":    len(set.Flashcards),
			"byDifficulty": byDifficulty,
			"isPublic":     set.IsPublic,
		},
	})
}

// CreateSet handles POST /api/v1/flashcard-sets.
func (h *Handler) CreateSet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string      `json:"title"`
		Description string      `json:"description"`
		Flashcards  []Flashcard `json:"flashcards"`
		IsPublic    bool        `json:"isPublic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusUnprocessableEntity, "title is required")
		return
	}
	set := h.store.CreateSet(FlashcardSet{
		Title:       req.Title,
		Description: req.Description,
		Flashcards:  req.Flashcards,
		IsPublic:    req.IsPublic,
	})
	writeJSON(w, http.StatusCreated, map[string]any{"flashcardSet": set})
}

// UpdateSet handles PUT /api/v1/flashcard-sets/{id}.
func (h *Handler) UpdateSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	set, ok := h.store.UpdateSet(id, req.Title, req.Description)
	if !ok {
		writeError(w, http.StatusNotFound, "flashcard set not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"flashcardSet": set})
}

// DeleteSet handles DELETE /api/v1/flashcard-sets/{id}.
func (h *Handler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.store.DeleteSet(id) {
		writeError(w, http.StatusNotFound, "flashcard set not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// DuplicateSet handles POST /api/v1/flashcard-sets/{id}/duplicate.
func (h *Handler) DuplicateSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	src, ok := h.store.GetSet(id)
	if !ok {
		writeError(w, http.StatusNotFound, "flashcard set not found")
		return
	}
	title := req.Title
	if title == "" {
		title = src.Title + " (copy)"
	}
	dup := h.store.CreateSet(FlashcardSet{
		Title:       title,
		Description: src.Description,
		Flashcards:  src.Flashcards,
		IsPublic:    false,
	})
	writeJSON(w, http.StatusCreated, map[string]any{"flashcardSet": dup})
}

// ProcessText handles POST /api/v1/processor/text.
func (h *Handler) ProcessText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content  string `json:"content"`
		Language string `json:"language"`
		Title    string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusUnprocessableEntity, "content is required")
		return
	}
	t := h.store.CreateTask("text")
	writeJSON(w, http.StatusAccepted, map[string]any{"taskId": t.ID, "status": t.Status})
}

// ProcessURL handles POST /api/v1/processor/url.
func (h *Handler) ProcessURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL      string `json:"url"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusUnprocessableEntity, "url is required")
		return
	}
	t := h.store.CreateTask("url")
	writeJSON(w, http.StatusAccepted, map[string]any{"taskId": t.ID, "status": t.Status})
}

// TaskStatus handles GET /api/v1/processor/task/{taskId}. Each read
// advances progress so pollers observe the task converging.
func (h *Handler) TaskStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskId")
	t, ok := h.store.ReadTask(id)
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}
