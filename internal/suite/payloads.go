package suite

// Request payloads, one typed record per endpoint. The wire names follow
// the service's camelCase contract.

// SetUpdate is the body of PUT /flashcard-sets/{id}.
type SetUpdate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TextJob is the body of POST /processor/text.
type TextJob struct {
	Content  string `json:"content"`
	Language string `json:"language"`
	Title    string `json:"title"`
}

// URLJob is the body of POST /processor/url.
type URLJob struct {
	URL      string `json:"url"`
	Language string `json:"language"`
}

// DuplicateRequest is the body of POST /flashcard-sets/{id}/duplicate.
type DuplicateRequest struct {
	Title string `json:"title"`
}

// Flashcard is one front/back learning-card pair.
type Flashcard struct {
	Front      string `json:"front"`
	Back       string `json:"back"`
	Difficulty string `json:"difficulty"`
}

// NewSet is the body of POST /flashcard-sets.
type NewSet struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Flashcards  []Flashcard `json:"flashcards"`
	IsPublic    bool        `json:"isPublic"`
}

// taskAccepted is the envelope a processor endpoint answers 202 with.
type taskAccepted struct {
	TaskID string `json:"taskId"`
}

// setCreated is the envelope POST /flashcard-sets answers 201 with.
type setCreated struct {
	FlashcardSet struct {
		ID string `json:"id"`
	} `json:"flashcardSet"`
}
