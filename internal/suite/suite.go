// Package suite walks the flashcard service's API surface in a fixed
// order, threading the values one response produces into the next request:
// the bearer token into every call, task ids into status polls, and the
// id of a throwaway set into its deletion.
package suite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pkt.systems/flashprobe/internal/probe"
	"pkt.systems/pslog"
)

// Run executes the whole sequence through the given prober. Status
// mismatches are recorded in the summary and never stop the walk;
// transport and setup errors do.
func Run(ctx context.Context, p probe.Prober, cfg Config, logger pslog.Base) (probe.RunSummary, error) {
	if p == nil {
		return probe.RunSummary{}, fmt.Errorf("nil prober")
	}
	if err := cfg.Validate(); err != nil {
		return probe.RunSummary{}, err
	}
	if logger == nil {
		logger = pslog.New(io.Discard)
	}

	start := time.Now()
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	auth := map[string]string{"Authorization": "Bearer " + cfg.Token}
	var sum probe.RunSummary

	do := func(c probe.Check) (probe.CheckResult, error) {
		res, err := p.Do(ctx, c)
		if err != nil {
			return res, fmt.Errorf("%s: %w", c.Name, err)
		}
		sum.Add(res)
		return res, nil
	}

	// Read-only endpoints.
	reads := []probe.Check{
		{Name: "auth me", Method: "GET", URL: base + "/auth/me", Headers: auth},
		{Name: "list sets", Method: "GET", URL: base + "/flashcard-sets", Headers: auth},
		{Name: "get set", Method: "GET", URL: base + "/flashcard-sets/" + cfg.SetID, Headers: auth},
		{Name: "set stats", Method: "GET", URL: base + "/flashcard-sets/" + cfg.SetID + "/stats", Headers: auth},
		// The public listing is the one call made without credentials.
		{Name: "public sets", Method: "GET", URL: base + "/flashcard-sets/public"},
	}
	for _, c := range reads {
		if _, err := do(c); err != nil {
			return sum, err
		}
	}

	// Update the target set.
	if _, err := do(probe.Check{
		Name:    "update set",
		Method:  "PUT",
		URL:     base + "/flashcard-sets/" + cfg.SetID,
		Headers: auth,
		Body: SetUpdate{
			Title:       "Updated Flashcard Set",
			Description: "This set was updated by API testing",
		},
	}); err != nil {
		return sum, err
	}

	// Text processing: 202 + taskId, then an immediate status read and
	// bounded delayed re-checks.
	textRes, err := do(probe.Check{
		Name:    "process text",
		Method:  "POST",
		URL:     base + "/processor/text",
		Headers: auth,
		Body: TextJob{
			Content:  "The mitochondria is the powerhouse of the cell. Photosynthesis is the process by which plants convert sunlight into energy.",
			Language: "english",
			Title:    "Biology Concepts",
		},
		ExpectStatus: http.StatusAccepted,
	})
	if err != nil {
		return sum, err
	}
	if taskID, ok := acceptedTask(textRes); ok {
		logger.Info("task accepted", "source", "text", "taskId", taskID)
		if err := pollTask(ctx, do, base, auth, taskID, cfg, logger); err != nil {
			return sum, err
		}
	} else {
		logger.Warn("no taskId in text processing response, skipping status checks")
	}

	// URL processing: sampled once, no delayed re-check.
	urlRes, err := do(probe.Check{
		Name:    "process url",
		Method:  "POST",
		URL:     base + "/processor/url",
		Headers: auth,
		Body: URLJob{
			URL:      "https://en.wikipedia.org/wiki/Flashcard",
			Language: "english",
		},
		ExpectStatus: http.StatusAccepted,
	})
	if err != nil {
		return sum, err
	}
	if taskID, ok := acceptedTask(urlRes); ok {
		logger.Info("task accepted", "source", "url", "taskId", taskID)
		if _, err := do(taskStatusCheck(base, auth, taskID)); err != nil {
			return sum, err
		}
	} else {
		logger.Warn("no taskId in url processing response, skipping status check")
	}

	// Duplicate the target set.
	if _, err := do(probe.Check{
		Name:         "duplicate set",
		Method:       "POST",
		URL:          base + "/flashcard-sets/" + cfg.SetID + "/duplicate",
		Headers:      auth,
		Body:         DuplicateRequest{Title: "Duplicated Flashcard Set"},
		ExpectStatus: http.StatusCreated,
	}); err != nil {
		return sum, err
	}

	// Create a throwaway set, then delete it.
	createRes, err := do(probe.Check{
		Name:    "create temp set",
		Method:  "POST",
		URL:     base + "/flashcard-sets",
		Headers: auth,
		Body: NewSet{
			Title:       "Temporary Set for Deletion Test",
			Description: "This set will be deleted",
			Flashcards: []Flashcard{
				{Front: "Delete me", Back: "Testing deletion", Difficulty: "easy"},
			},
			IsPublic: false,
		},
		ExpectStatus: http.StatusCreated,
	})
	if err != nil {
		return sum, err
	}
	if tempID, ok := createdSet(createRes); ok {
		logger.Info("temporary set created", "id", tempID)
		if _, err := do(probe.Check{
			Name:    "delete temp set",
			Method:  "DELETE",
			URL:     base + "/flashcard-sets/" + tempID,
			Headers: auth,
		}); err != nil {
			return sum, err
		}
	} else {
		logger.Warn("no flashcardSet.id in create response, skipping delete")
	}

	sum.TotalElapsed = time.Since(start)
	return sum, nil
}

// pollTask reads the task status once immediately, then re-checks after
// each poll interval up to the configured attempts, stretching the
// interval by the backoff factor.
func pollTask(ctx context.Context, do func(probe.Check) (probe.CheckResult, error), base string, auth map[string]string, taskID string, cfg Config, logger pslog.Base) error {
	if _, err := do(taskStatusCheck(base, auth, taskID)); err != nil {
		return err
	}
	interval := cfg.pollInterval()
	for i := 0; i < cfg.pollAttempts(); i++ {
		logger.Info("waiting before task re-check", "taskId", taskID, "delay", interval.String())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
		if _, err := do(taskStatusCheck(base, auth, taskID)); err != nil {
			return err
		}
		interval = time.Duration(float64(interval) * cfg.pollBackoff())
	}
	return nil
}

func taskStatusCheck(base string, auth map[string]string, taskID string) probe.Check {
	return probe.Check{
		Name:    "task status",
		Method:  "GET",
		URL:     base + "/processor/task/" + taskID,
		Headers: auth,
	}
}

// acceptedTask extracts taskId from a 202 response. Anything else (wrong
// status, unparseable body, missing key) means the follow-up polls are
// skipped.
func acceptedTask(res probe.CheckResult) (string, bool) {
	if res.Status != http.StatusAccepted {
		return "", false
	}
	var env taskAccepted
	if err := json.Unmarshal(res.Body, &env); err != nil {
		return "", false
	}
	if env.TaskID == "" {
		return "", false
	}
	return env.TaskID, true
}

// createdSet extracts flashcardSet.id from a 201 response.
func createdSet(res probe.CheckResult) (string, bool) {
	if res.Status != http.StatusCreated {
		return "", false
	}
	var env setCreated
	if err := json.Unmarshal(res.Body, &env); err != nil {
		return "", false
	}
	if env.FlashcardSet.ID == "" {
		return "", false
	}
	return env.FlashcardSet.ID, true
}
