// Package flashprobe exposes a Go API for smoke-testing a flashcard-set
// management HTTP service.
//
// Quick start:
//
//	ctx := context.Background()
//	p, _ := flashprobe.New(ctx)
//	cfg, _ := flashprobe.LoadSuiteConfig("token.txt", "flashcardset_id.txt")
//	sum, _ := flashprobe.RunSuite(ctx, p, cfg)
//
// Run a single check:
//
//	res, _ := p.Do(ctx, flashprobe.Check{
//		Method:  "GET",
//		URL:     "http://localhost:5002/api/v1/auth/me",
//		Headers: map[string]string{"Authorization": "Bearer " + token},
//	})
//
// Each check prints its report (request line, observed vs expected status,
// success boolean, pretty-printed JSON body or raw text, separator) and the
// result is returned unconditionally; a status mismatch is recorded, never
// raised.
//
// Hooks:
//
//	p, _ := flashprobe.New(ctx,
//		flashprobe.WithPreCheckHook(func(ctx context.Context, c flashprobe.Check, req *http.Request, log pslog.Base) error {
//			req.Header.Set("X-Request-ID", newID())
//			return nil
//		}),
//		flashprobe.WithPostCheckHook(func(ctx context.Context, c flashprobe.Check, res flashprobe.CheckResult, log pslog.Base) error {
//			if !res.Passed {
//				log.Warn("check failed", "name", c.Name, "status", res.Status)
//			}
//			return nil
//		}),
//	)
//
// Transport knobs mirror the CLI:
//
//	custom := &http.Client{Timeout: 5 * time.Second}
//	p, _ := flashprobe.New(ctx, flashprobe.WithHTTPClient(custom))
//
// The SDK keeps concrete types unexported; interaction happens through the
// Prober interface plus the config and result structs defined in this
// package.
package flashprobe
