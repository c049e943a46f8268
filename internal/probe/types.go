package probe

import (
	"context"
	"io"
	"net/http"
	"time"

	"pkt.systems/pslog"
)

// Prober is the public interface exposed by this module. It is safe to hold
// and use concurrently from multiple goroutines.
type Prober interface {
	// Do sends exactly one HTTP request described by the check, prints the
	// console report, and returns the result unconditionally. A status
	// mismatch is recorded on the result, never returned as an error;
	// transport failures and unsupported methods are.
	Do(ctx context.Context, c Check) (CheckResult, error)
}

// Check describes one HTTP request and the status code it is expected to
// produce.
type Check struct {
	// Name labels the check in logs and reports. Optional.
	Name string
	// Method is matched case-insensitively against GET, POST, PUT, DELETE.
	Method string
	URL    string
	// Headers are set verbatim on the request.
	Headers map[string]string
	// Body is marshalled as JSON for POST and PUT. GET and DELETE requests
	// never carry a body even when one is supplied.
	Body any
	// ExpectStatus defaults to 200 when zero.
	ExpectStatus int
}

// CheckResult captures the outcome of a single check.
type CheckResult struct {
	Name   string
	Method string
	URL    string
	// RequestHeaders captures the headers sent for this check.
	RequestHeaders map[string]string
	// ResponseHeaders captures the headers returned for this check.
	ResponseHeaders map[string]string
	Status          int
	ExpectStatus    int
	// Passed is true iff Status equals ExpectStatus.
	Passed   bool
	Duration time.Duration
	// Body is the raw response body.
	Body []byte
	// JSON holds the decoded response body when it parses as JSON, nil
	// otherwise.
	JSON any
}

// RunSummary aggregates multiple check results.
type RunSummary struct {
	Checks       []CheckResult
	Total        int
	Passed       int
	Failed       int
	TotalElapsed time.Duration
}

// Add appends a result and updates the counters.
func (s *RunSummary) Add(res CheckResult) {
	s.Checks = append(s.Checks, res)
	s.Total++
	if res.Passed {
		s.Passed++
	} else {
		s.Failed++
	}
}

// PreCheckHook is invoked before each request is executed (after the HTTP
// request has been built). It can mutate the *http.Request or return an
// error to abort the run. The logger is the same pslog logger used by the
// prober.
type PreCheckHook func(ctx context.Context, c Check, req *http.Request, logger pslog.Base) error

// PostCheckHook is invoked after a request has been executed and the report
// printed. It receives the CheckResult and may return an error to abort the
// run.
type PostCheckHook func(ctx context.Context, c Check, res CheckResult, logger pslog.Base) error

// Option modifies a Prober at construction time.
type Option func(*proberConfig)

// WithLogger overrides the default logger (pslog console).
func WithLogger(logger pslog.Base) Option {
	return func(pc *proberConfig) { pc.logger = logger }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(pc *proberConfig) { pc.httpClient = client }
}

// WithTimeout sets the default per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(pc *proberConfig) { pc.timeout = timeout }
}

// WithReportWriter redirects the console report (defaults to os.Stdout).
func WithReportWriter(w io.Writer) Option {
	return func(pc *proberConfig) { pc.report = w }
}

// WithPreCheckHook registers a Go hook invoked before each check is executed.
func WithPreCheckHook(h PreCheckHook) Option {
	return func(pc *proberConfig) { pc.preHook = h }
}

// WithPostCheckHook registers a Go hook invoked after each check finishes.
func WithPostCheckHook(h PostCheckHook) Option {
	return func(pc *proberConfig) { pc.postHook = h }
}
