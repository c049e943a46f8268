package flashprobe

import (
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleSummary() RunSummary {
	return RunSummary{
		Checks: []CheckResult{
			{Name: "auth me", Method: "GET", URL: "http://x/auth/me", Status: 200, ExpectStatus: 200, Passed: true, Duration: 1500 * time.Millisecond},
			{Name: "process text", Method: "POST", URL: "http://x/processor/text", Status: 500, ExpectStatus: 202, Passed: false, Duration: 500 * time.Millisecond},
		},
		Total:        2,
		Passed:       1,
		Failed:       1,
		TotalElapsed: 2 * time.Second,
	}
}

func TestWriteReportJSON(t *testing.T) {
	tmp := t.TempDir()
	out := tmp + "/report.json"

	if err := WriteReportJSON(out, sampleSummary()); err != nil {
		t.Fatalf("write json: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()

	var decoded RunSummary
	if err := json.NewDecoder(f).Decode(&decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Failed != 1 || len(decoded.Checks) != 2 {
		t.Fatalf("unexpected decoded summary %+v", decoded)
	}
}

func TestWriteReportJUnit(t *testing.T) {
	tmp := t.TempDir()
	out := tmp + "/report.xml"

	if err := WriteReportJUnit(out, sampleSummary()); err != nil {
		t.Fatalf("write junit: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read junit: %v", err)
	}

	var suite junitTestsuite
	if err := xml.Unmarshal(data, &suite); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if suite.Tests != 2 || suite.Failures != 1 {
		t.Fatalf("unexpected suite %+v", suite)
	}
	if len(suite.Cases) != 2 || suite.Cases[1].Failure == nil {
		t.Fatalf("expected failure case recorded")
	}
	if !strings.Contains(suite.Cases[1].Failure.Message, "status 500") {
		t.Fatalf("failure message should name the status: %+v", suite.Cases[1].Failure)
	}
}

func TestFilterReportHeaders(t *testing.T) {
	sum := RunSummary{
		Checks: []CheckResult{
			{
				Name:            "check",
				RequestHeaders:  map[string]string{"authorization": "Bearer secret", "x-foo": "bar"},
				ResponseHeaders: map[string]string{"content-type": "application/json", "x-foo": "bar"},
			},
		},
	}

	withMask := FilterReportHeaders(sum, ReportOptions{})
	if withMask.Checks[0].RequestHeaders["authorization"] != "********" {
		t.Fatalf("authorization not masked: %+v", withMask.Checks[0].RequestHeaders)
	}
	if withMask.Checks[0].RequestHeaders["x-foo"] != "bar" {
		t.Fatalf("unexpected header retained")
	}

	skipOne := FilterReportHeaders(sum, ReportOptions{SkipHeaders: []string{"Authorization"}})
	if _, ok := skipOne.Checks[0].RequestHeaders["authorization"]; ok {
		t.Fatalf("authorization should be skipped")
	}
	if skipOne.Checks[0].RequestHeaders["x-foo"] != "bar" {
		t.Fatalf("x-foo should remain")
	}

	skipAll := FilterReportHeaders(sum, ReportOptions{SkipAllHeaders: true})
	if skipAll.Checks[0].RequestHeaders != nil || skipAll.Checks[0].ResponseHeaders != nil {
		t.Fatalf("headers should be nil when skipping all: %+v %+v", skipAll.Checks[0].RequestHeaders, skipAll.Checks[0].ResponseHeaders)
	}
}

func TestWriteReportHTML(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "report.html")

	if err := WriteReportHTML(out, sampleSummary()); err != nil {
		t.Fatalf("write html: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read html: %v", err)
	}
	html := string(got)
	for _, want := range []string{"flashprobe report", "status-pass", "status-fail", "GET http://x/auth/me"} {
		if !strings.Contains(html, want) {
			t.Fatalf("html report missing %q:\n%s", want, html)
		}
	}
}

func TestWriteReportUnknownFormat(t *testing.T) {
	if err := WriteReport("YAML", filepath.Join(t.TempDir(), "r"), sampleSummary()); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
