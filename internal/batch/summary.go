package batch

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	pdferrors "github.com/a3tai/pdf-form-report/internal/pdf/errors"
)

// SkippedFile is an input that produced no row
type SkippedFile struct {
	Path   string              `yaml:"path"`
	Type   pdferrors.ErrorType `yaml:"type"`
	Reason string              `yaml:"reason"`
}

// Summary describes one run of the aggregator
type Summary struct {
	RunID       string        `yaml:"run_id"`
	StartedAt   time.Time     `yaml:"started_at"`
	FinishedAt  time.Time     `yaml:"finished_at"`
	InputFolder string        `yaml:"input_folder"`
	OutputFile  string        `yaml:"output_file"`
	Success     bool          `yaml:"success"`
	Discovered  int           `yaml:"discovered"`
	Written     int           `yaml:"written"`
	Cancelled   bool          `yaml:"cancelled,omitempty"`
	Failure     string        `yaml:"failure,omitempty"`
	Skipped     []SkippedFile `yaml:"skipped"`
}

func newSummary(inputFolder, outputFile string, now time.Time) *Summary {
	return &Summary{
		RunID:       uuid.NewString(),
		StartedAt:   now,
		InputFolder: inputFolder,
		OutputFile:  outputFile,
		Skipped:     []SkippedFile{},
	}
}

func (s *Summary) skip(err *pdferrors.ExtractionError) {
	s.Skipped = append(s.Skipped, SkippedFile{
		Path:   err.FilePath,
		Type:   err.Type,
		Reason: err.Message,
	})
}

// SkippedPaths returns the paths of the skipped files, in processing order
func (s *Summary) SkippedPaths() []string {
	paths := make([]string, len(s.Skipped))
	for i, sf := range s.Skipped {
		paths[i] = sf.Path
	}
	return paths
}

// WriteYAML stores the summary at path, replacing any existing file
func (s *Summary) WriteYAML(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
