package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"pkt.systems/pslog"
)

const defaultTimeout = 15 * time.Second

// prober implements Prober.
type prober struct {
	logger     pslog.Base
	httpClient *http.Client
	timeout    time.Duration
	report     io.Writer
	preHook    PreCheckHook
	postHook   PostCheckHook
}

type proberConfig struct {
	logger     pslog.Base
	httpClient *http.Client
	timeout    time.Duration
	report     io.Writer
	preHook    PreCheckHook
	postHook   PostCheckHook
}

// New constructs a Prober instance with optional configuration.
func New(ctx context.Context, opts ...Option) (Prober, error) {
	if ctx == nil {
		return nil, errors.New("nil context")
	}
	cfg := proberConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = pslog.New(os.Stdout)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if cfg.timeout == 0 {
		cfg.timeout = defaultTimeout
	}
	if cfg.report == nil {
		cfg.report = os.Stdout
	}
	p := &prober{
		logger:     cfg.logger,
		httpClient: cfg.httpClient,
		timeout:    cfg.timeout,
		report:     cfg.report,
		preHook:    cfg.preHook,
		postHook:   cfg.postHook,
	}
	return p, nil
}

// Do executes a single check. See Prober.
func (p *prober) Do(ctx context.Context, c Check) (CheckResult, error) {
	if c.ExpectStatus == 0 {
		c.ExpectStatus = http.StatusOK
	}

	req, err := buildHTTPRequest(c)
	if err != nil {
		return CheckResult{}, err
	}

	if p.preHook != nil {
		if err := p.preHook(ctx, c, req, p.logger); err != nil {
			return CheckResult{}, err
		}
	}

	timeout := p.timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	resp, err := p.httpClient.Do(req.WithContext(ctxTimeout))
	duration := time.Since(start)
	if err != nil {
		return CheckResult{}, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return CheckResult{}, fmt.Errorf("read response body: %w", err)
	}

	res := CheckResult{
		Name:            c.Name,
		Method:          req.Method,
		URL:             req.URL.String(),
		RequestHeaders:  headerMap(req.Header),
		ResponseHeaders: headerMap(resp.Header),
		Status:          resp.StatusCode,
		ExpectStatus:    c.ExpectStatus,
		Passed:          resp.StatusCode == c.ExpectStatus,
		Duration:        duration,
		Body:            body,
	}
	if decoded, ok := decodeJSON(body); ok {
		res.JSON = decoded
	}

	printReport(p.report, res)
	p.logger.Debug("check",
		"name", c.Name,
		"method", res.Method,
		"url", res.URL,
		"status", res.Status,
		"expected", res.ExpectStatus,
		"passed", res.Passed,
		"dur", res.Duration.String())

	if p.postHook != nil {
		if err := p.postHook(ctx, c, res, p.logger); err != nil {
			return res, err
		}
	}
	return res, nil
}

// buildHTTPRequest maps the check onto an *http.Request. GET and DELETE
// never carry a body; POST and PUT serialize Check.Body as JSON. Any other
// verb is rejected before I/O happens.
func buildHTTPRequest(c Check) (*http.Request, error) {
	var bodyReader io.Reader = http.NoBody
	withBody := false

	switch strings.ToUpper(strings.TrimSpace(c.Method)) {
	case http.MethodGet, http.MethodDelete:
	case http.MethodPost, http.MethodPut:
		withBody = true
	default:
		return nil, fmt.Errorf("unsupported method %q (want GET, POST, PUT or DELETE)", c.Method)
	}

	if withBody && c.Body != nil {
		payload, err := json.Marshal(c.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(strings.ToUpper(strings.TrimSpace(c.Method)), c.URL, bodyReader)
	if err != nil {
		return nil, err
	}
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}
	if withBody && c.Body != nil {
		if req.Header.Get("Content-Type") == "" {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	return req, nil
}

func decodeJSON(body []byte) (any, bool) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, false
	}
	return v, true
}

func headerMap(h http.Header) map[string]string {
	if h == nil {
		return nil
	}
	out := map[string]string{}
	for k, vals := range h {
		if len(vals) > 0 {
			out[strings.ToLower(k)] = vals[0]
		} else {
			out[strings.ToLower(k)] = ""
		}
	}
	return out
}
