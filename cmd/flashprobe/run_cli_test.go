package main

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"pkt.systems/flashprobe"
	"pkt.systems/flashprobe/internal/stub"
)

// End to end: the run command walks the stub service and writes a JSON
// report.
func TestRunCommandAgainstStub(t *testing.T) {
	h := stub.NewHandler(stub.NewStore(), "tok")
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	tmp := t.TempDir()
	tokenPath := filepath.Join(tmp, "token.txt")
	setPath := filepath.Join(tmp, "flashcardset_id.txt")
	if err := os.WriteFile(tokenPath, []byte("tok\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(setPath, []byte(h.Store().SeedSetID()+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	report := filepath.Join(tmp, "report.json")

	cmd := newRootCmd()
	cmd.SetContext(context.Background())
	cmd.SetArgs([]string{
		"run",
		"--base-url", srv.URL + "/api/v1",
		"--token-file", tokenPath,
		"--set-id-file", setPath,
		"--poll-interval", "5",
		"--reporter-json", report,
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("run cmd: %v", err)
	}

	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("report missing: %v", err)
	}
	var sum flashprobe.RunSummary
	if err := json.Unmarshal(data, &sum); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if sum.Total != 14 || sum.Failed != 0 {
		t.Fatalf("unexpected summary: total=%d failed=%d", sum.Total, sum.Failed)
	}
	for _, c := range sum.Checks {
		if v, ok := c.RequestHeaders["authorization"]; ok && v != "********" {
			t.Fatalf("authorization leaked into report: %q", v)
		}
	}
}

// Inline credentials bypass the token/set-id files entirely.
func TestRunCommandInlineCredentials(t *testing.T) {
	h := stub.NewHandler(stub.NewStore(), "inline-tok")
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	report := filepath.Join(t.TempDir(), "report.json")

	cmd := newRootCmd()
	cmd.SetContext(context.Background())
	cmd.SetArgs([]string{
		"run",
		"--base-url", srv.URL + "/api/v1",
		"--token", "inline-tok",
		"--set-id", h.Store().SeedSetID(),
		"--poll-interval", "5",
		"--reporter-json", report,
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("run cmd: %v", err)
	}
	var sum flashprobe.RunSummary
	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("report missing: %v", err)
	}
	if err := json.Unmarshal(data, &sum); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if sum.Failed != 0 {
		t.Fatalf("expected clean run, got %d failures", sum.Failed)
	}
}
