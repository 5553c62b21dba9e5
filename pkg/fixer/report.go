package fixer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Report is the JSON envelope the analysis engine hands to phpfix.
type Report struct {
	Issues []Issue `json:"issues"`
}

// DecodeReport reads a JSON issue report.
// Issue order is preserved; it feeds the deterministic per-file grouping.
func DecodeReport(r io.Reader) ([]Issue, error) {
	var report Report

	dec := json.NewDecoder(r)
	if err := dec.Decode(&report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	for i, issue := range report.Issues {
		if issue.Path == "" {
			return nil, fmt.Errorf("decode report: issue %d has no path", i)
		}
		if issue.Line < 1 {
			return nil, fmt.Errorf("decode report: issue %d has line %d, want >= 1", i, issue.Line)
		}
	}

	return report.Issues, nil
}

// ReadReportFile reads a JSON issue report from disk.
func ReadReportFile(path string) ([]Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	return DecodeReport(f)
}
