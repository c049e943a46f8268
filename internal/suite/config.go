package suite

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Defaults mirror the ad-hoc smoke script this suite grew out of: the local
// service port and a single delayed re-check of the text-processing task.
const (
	DefaultBaseURL      = "http://localhost:5002/api/v1"
	DefaultPollAttempts = 1
	DefaultPollInterval = 2 * time.Second
)

// Config carries everything the suite needs, built once at process start
// and passed explicitly into Run. There is no ambient state.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:5002/api/v1.
	BaseURL string
	// Token is the bearer credential sent on every request except the
	// public listing.
	Token string
	// SetID identifies the pre-existing flashcard set the read/update
	// checks target.
	SetID string
	// PollAttempts is the number of delayed task-status re-checks after the
	// immediate one. Zero or negative means the default single re-check.
	PollAttempts int
	// PollInterval is the delay before each re-check.
	PollInterval time.Duration
	// PollBackoff multiplies the interval after each re-check. Values
	// below 1 are treated as 1 (fixed interval).
	PollBackoff float64
}

// Validate checks the fields Run cannot work without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base URL required")
	}
	if strings.TrimSpace(c.Token) == "" {
		return errors.New("bearer token required")
	}
	if strings.TrimSpace(c.SetID) == "" {
		return errors.New("flashcard set id required")
	}
	return nil
}

func (c Config) pollAttempts() int {
	if c.PollAttempts <= 0 {
		return DefaultPollAttempts
	}
	return c.PollAttempts
}

func (c Config) pollInterval() time.Duration {
	if c.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return c.PollInterval
}

func (c Config) pollBackoff() float64 {
	if c.PollBackoff < 1 {
		return 1
	}
	return c.PollBackoff
}

// Load reads the token and set id from their plain-text files, trimming
// surrounding whitespace. Read failures propagate and terminate the run.
func Load(tokenPath, setIDPath string) (Config, error) {
	token, err := readTrimmed(tokenPath)
	if err != nil {
		return Config{}, fmt.Errorf("read token: %w", err)
	}
	setID, err := readTrimmed(setIDPath)
	if err != nil {
		return Config{}, fmt.Errorf("read set id: %w", err)
	}
	return Config{
		BaseURL: DefaultBaseURL,
		Token:   token,
		SetID:   setID,
	}, nil
}

func readTrimmed(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
