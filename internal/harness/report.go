package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveReport writes summary as indented JSON into dir and returns the file
// path. The file name carries the start time and the run ID.
func SaveReport(dir string, summary TestRunSummary) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	id := summary.RunID
	if len(id) > 8 {
		id = id[:8]
	}
	filename := fmt.Sprintf("hadesctl-test-report-%s-%s.json", summary.StartTime.Format("20060102-150405"), id)
	fullPath := filepath.Join(dir, filename)

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	if err := os.WriteFile(fullPath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	return fullPath, nil
}
