package stub

import (
	"fmt"
	"sync"
	"time"
)

// FlashcardSet is the service's core resource: a named collection of
// front/back learning-card pairs.
type FlashcardSet struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	IsPublic    bool        `json:"isPublic"`
	Flashcards  []Flashcard `json:"flashcards"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Flashcard is one card in a set.
type Flashcard struct {
	Front      string `json:"front"`
	Back       string `json:"back"`
	Difficulty string `json:"difficulty"`
}

// Task represents an asynchronous processing job. Progress advances each
// time its status is read so that pollers observe movement.
type Task struct {
	ID       string `json:"taskId"`
	Source   string `json:"source"` // "text" or "url"
	Status   string `json:"status"` // "processing" or "completed"
	Progress int    `json:"progress"`
}

// User is the authenticated account returned by /auth/me.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MemoryStore holds all stub state in memory.
type MemoryStore struct {
	mu    sync.Mutex
	sets  map[string]*FlashcardSet
	tasks map[string]*Task
	user  User
	nSets int
	nTask int
}

// NewStore creates a store seeded with one user and one flashcard set.
// The seeded set's id is returned by SeedSetID.
func NewStore() *MemoryStore {
	s := &MemoryStore{
		sets:  map[string]*FlashcardSet{},
		tasks: map[string]*Task{},
		user:  User{ID: "user_1", Name: "Smoke Tester", Email: "smoke@example.com"},
	}
	now := time.Now().UTC()
	seed := &FlashcardSet{
		ID:          "set_1",
		Title:       "Seeded Flashcard Set",
		Description: "Pre-existing set for harness runs",
		IsPublic:    true,
		Flashcards: []Flashcard{
			{Front: "What is Go?", Back: "A programming language", Difficulty: "easy"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sets[seed.ID] = seed
	s.nSets = 1
	return s
}

// SeedSetID returns the id of the set the store was seeded with.
func (s *MemoryStore) SeedSetID() string { return "set_1" }

// User returns the seeded account.
func (s *MemoryStore) User() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// GetSet returns a copy of the set with the given id.
func (s *MemoryStore) GetSet(id string) (FlashcardSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[id]
	if !ok {
		return FlashcardSet{}, false
	}
	return *set, true
}

// ListSets returns all sets, optionally only the public ones.
func (s *MemoryStore) ListSets(publicOnly bool) []FlashcardSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []FlashcardSet{}
	for _, set := range s.sets {
		if publicOnly && !set.IsPublic {
			continue
		}
		out = append(out, *set)
	}
	return out
}

// CreateSet stores a new set and returns it with its assigned id.
func (s *MemoryStore) CreateSet(set FlashcardSet) FlashcardSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nSets++
	set.ID = fmt.Sprintf("set_%d", s.nSets)
	now := time.Now().UTC()
	set.CreatedAt = now
	set.UpdatedAt = now
	s.sets[set.ID] = &set
	return set
}

// UpdateSet applies title/description changes to an existing set.
func (s *MemoryStore) UpdateSet(id, title, description string) (FlashcardSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[id]
	if !ok {
		return FlashcardSet{}, false
	}
	set.Title = title
	set.Description = description
	set.UpdatedAt = time.Now().UTC()
	return *set, true
}

// DeleteSet removes a set.
func (s *MemoryStore) DeleteSet(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sets[id]; !ok {
		return false
	}
	delete(s.sets, id)
	return true
}

// CreateTask registers a new processing job.
func (s *MemoryStore) CreateTask(source string) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nTask++
	t := &Task{
		ID:     fmt.Sprintf("task_%d", s.nTask),
		Source: source,
		Status: "processing",
	}
	s.tasks[t.ID] = t
	return *t
}

// ReadTask returns the task and advances its progress, completing it once
// progress reaches 100.
func (s *MemoryStore) ReadTask(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, false
	}
	if t.Status != "completed" {
		t.Progress += 50
		if t.Progress >= 100 {
			t.Progress = 100
			t.Status = "completed"
		}
	}
	return *t, true
}
