package flashprobe

import (
	"context"
	"time"

	"pkt.systems/flashprobe/internal/suite"
	"pkt.systems/pslog"
)

// SuiteConfig configures a full walk of the flashcard service's API.
type SuiteConfig struct {
	// BaseURL is the API root. Defaults to http://localhost:5002/api/v1.
	BaseURL string
	// Token is the bearer credential used on every call except the public
	// listing.
	Token string
	// SetID identifies the pre-existing flashcard set to read and update.
	SetID string
	// PollAttempts is the number of delayed task-status re-checks
	// (default: a single re-check after 2 seconds).
	PollAttempts int
	// PollInterval is the delay before each re-check (default 2s).
	PollInterval time.Duration
	// PollBackoff multiplies the interval after each re-check (default 1).
	PollBackoff float64
	Logger      pslog.Base
}

// LoadSuiteConfig reads the bearer token and target set id from plain-text
// files, trimmed of surrounding whitespace.
func LoadSuiteConfig(tokenPath, setIDPath string) (SuiteConfig, error) {
	cfg, err := suite.Load(tokenPath, setIDPath)
	if err != nil {
		return SuiteConfig{}, err
	}
	return SuiteConfig{
		BaseURL: cfg.BaseURL,
		Token:   cfg.Token,
		SetID:   cfg.SetID,
	}, nil
}

// RunSuite exercises the whole API surface through the given prober:
// authenticated reads, the unauthenticated public listing, a set update,
// text and URL processing with task polling, duplication, and creation
// plus deletion of a throwaway set. Status mismatches are reported in the
// summary; transport faults abort the run.
func RunSuite(ctx context.Context, p Prober, cfg SuiteConfig) (RunSummary, error) {
	sc := suite.Config{
		BaseURL:      cfg.BaseURL,
		Token:        cfg.Token,
		SetID:        cfg.SetID,
		PollAttempts: cfg.PollAttempts,
		PollInterval: cfg.PollInterval,
		PollBackoff:  cfg.PollBackoff,
	}
	if sc.BaseURL == "" {
		sc.BaseURL = suite.DefaultBaseURL
	}
	return suite.Run(ctx, p, sc, cfg.Logger)
}
