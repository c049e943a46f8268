package probe

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// printReport writes the human-readable account of one check: the request
// line, observed vs expected status, the success boolean, the body (pretty
// JSON when it parses, raw text otherwise) and a separator.
func printReport(w io.Writer, res CheckResult) {
	fmt.Fprintf(w, "Testing %s %s\n", res.Method, res.URL)
	fmt.Fprintf(w, "Status: %d (Expected: %d)\n", res.Status, res.ExpectStatus)
	fmt.Fprintf(w, "Success: %t\n", res.Passed)
	if res.JSON != nil {
		if pretty, err := json.MarshalIndent(res.JSON, "", "  "); err == nil {
			fmt.Fprintln(w, string(pretty))
		} else {
			fmt.Fprintln(w, string(res.Body))
		}
	} else {
		fmt.Fprintln(w, string(res.Body))
	}
	fmt.Fprintln(w, strings.Repeat("-", 60))
}
