package flashprobe

import (
	"context"

	"pkt.systems/flashprobe/internal/probe"
	"pkt.systems/version"
)

// Public type aliases to probe package

// Prober exposes methods to run individual HTTP checks.
type (
	Prober = probe.Prober
	// Check describes one HTTP request plus its expected status code.
	Check = probe.Check
	// CheckResult captures the outcome of a single check.
	CheckResult = probe.CheckResult
	// RunSummary aggregates check results from a suite run.
	RunSummary = probe.RunSummary
	// PreCheckHook runs before each request is sent.
	PreCheckHook = probe.PreCheckHook
	// PostCheckHook runs after each check's report has been printed.
	PostCheckHook = probe.PostCheckHook
)

// Option tweaks prober construction.
type Option = probe.Option

var (
	// WithLogger supplies a custom pslog logger.
	WithLogger = probe.WithLogger
	// WithHTTPClient injects a custom HTTP client.
	WithHTTPClient = probe.WithHTTPClient
	// WithTimeout sets a default per-request timeout.
	WithTimeout = probe.WithTimeout
	// WithReportWriter redirects the console report.
	WithReportWriter = probe.WithReportWriter
	// WithPreCheckHook registers a Go hook invoked before each request (logger provided).
	WithPreCheckHook = probe.WithPreCheckHook
	// WithPostCheckHook registers a Go hook invoked after each request (logger provided).
	WithPostCheckHook = probe.WithPostCheckHook
)

// New constructs a Prober instance.
func New(ctx context.Context, opts ...Option) (Prober, error) {
	return probe.New(ctx, opts...)
}

// Version returns the current module version (best effort).
func Version() string {
	return moduleVersion(modulePath)
}

const modulePath = "pkt.systems/flashprobe"

var moduleVersion = version.ModuleVersion
