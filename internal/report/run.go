package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Run summarizes one extraction run for audit alongside the CSV.
type Run struct {
	RunID       string    `json:"run_id"`
	InputFolder string    `json:"input_folder"`
	Started     time.Time `json:"started"`
	Finished    time.Time `json:"finished"`

	SearchTexts []string `json:"search_texts,omitempty"`
	Indicators  []string `json:"indicators,omitempty"`
	Fallback    bool     `json:"fallback_used"`

	Candidates int `json:"candidates"`
	Rows       int `json:"rows"`
	Archives   int `json:"archives"`
	Errors     int `json:"errors"`

	CSVPath string `json:"csv_path,omitempty"`
}

// NewRun starts a report for an extraction over inputFolder.
func NewRun(inputFolder string) *Run {
	return &Run{
		RunID:       uuid.NewString(),
		InputFolder: inputFolder,
		Started:     time.Now(),
	}
}

// Finish stamps the completion time.
func (r *Run) Finish() {
	r.Finished = time.Now()
}

// Save writes the report as indented JSON.
func (r *Run) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not save run report: %w", err)
	}
	return nil
}
