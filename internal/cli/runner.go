package cli

import (
	"fmt"
	"os"
	"strings"

	"dicom-metadata/internal/extraction"
)

// Options holds CLI configuration options
type Options struct {
	InputFolder        string
	FromArchives       bool
	SearchTexts        []string
	Indicators         []string
	FallbackIndicators []string
	OutputCSV          string
	ReportFile         string
	ErrorLog           string
	Verbose            bool
}

// Run executes the CLI extraction process
func Run(opts Options) error {
	if opts.InputFolder == "" {
		return fmt.Errorf("input folder is required")
	}

	info, err := os.Stat(opts.InputFolder)
	if err != nil {
		return fmt.Errorf("input folder does not exist: %s", opts.InputFolder)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path is not a directory: %s", opts.InputFolder)
	}

	printHeader(opts)

	// Per-file scan output is noisy on large batches; keep it behind -v.
	output := func(string) {}
	if opts.Verbose {
		output = func(s string) { fmt.Print(s) }
	}

	cfg := extraction.Config{
		InputFolder:        opts.InputFolder,
		FromArchives:       opts.FromArchives,
		SearchTexts:        opts.SearchTexts,
		Indicators:         opts.Indicators,
		FallbackIndicators: opts.FallbackIndicators,
		OutputCSV:          opts.OutputCSV,
		ReportFile:         opts.ReportFile,
		ErrorLog:           opts.ErrorLog,
		OutputWriter:       output,
	}

	pb := newProgressBar(50)
	progressCallback := func(current, total int, name, status string) {
		if !opts.Verbose {
			pb.update(current, total)
		}
	}

	fmt.Println()
	extractor := extraction.New()
	stats, err := extractor.RunWithProgress(cfg, progressCallback)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if stats.Rows > 0 && !opts.Verbose {
		pb.update(stats.Rows, stats.Rows)
		fmt.Println()
	}

	printSummary(stats, opts)
	return nil
}

// PrintUsage prints CLI usage information
func PrintUsage() {
	fmt.Println(`DICOM Metadata Extractor - Command Line Interface

USAGE:
  dicom-metadata                    Launch GUI (default)
  dicom-metadata -i <path> [flags]  Run CLI mode

Scans a folder tree for DICOM files, keeps one representative file per
(patient, study date) whose series description passes the filter, and
exports the normalized metadata as CSV. With --archives every .zip under
the input folder is expanded in turn and the first match inside each is
collected instead.

FLAGS:
  -i, --input <path>       Input folder (required for CLI mode)
      --archives           Search inside .zip archives instead of loose files
  -s, --search <a,b>       Archive mode: series-description substrings,
                           one discovery pass each (default: stress,rest)
      --indicators <a,b>   Folder mode: all words must appear in the
                           normalized series description (default: stress,perf)
      --fallback <a,b>     Retry filter when the primary one matches nothing
                           (default: perf)
  -o, --output <path>      Output CSV path (default: metadata_cmr_dicom.csv)
      --report <path>      Write a JSON run report
      --error-log <path>   Append recovered per-file errors to this log
  -v, --verbose            Print every file inspected
  -h, --help               Show this help message

CONFIGURATION:
  Defaults can also come from a YAML file named by DCMX_CONFIG and from
  DCMX_* environment variables (e.g. DCMX_OUTPUT_CSV). Flags win.

EXAMPLES:
  # One row per study whose description mentions stress perfusion
  ./dicom-metadata -i /data/cmr -o stress_perf.csv

  # First stress and rest match inside every zipped study
  ./dicom-metadata -i /data/zipped --archives -s stress,rest -o merged.csv

  # Keep an audit trail of a large batch
  ./dicom-metadata -i /data/cmr --report run.json --error-log errors.log`)
}

// printHeader prints the CLI header with configuration
func printHeader(opts Options) {
	fmt.Println("DICOM Metadata Extractor")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Input:     %s\n", opts.InputFolder)
	if opts.FromArchives {
		fmt.Printf("Mode:      archives (search: %s)\n", strings.Join(opts.SearchTexts, ", "))
	} else {
		fmt.Printf("Mode:      folder (indicators: %s)\n", strings.Join(opts.Indicators, ", "))
		if len(opts.FallbackIndicators) > 0 {
			fmt.Printf("Fallback:  %s\n", strings.Join(opts.FallbackIndicators, ", "))
		}
	}
	if opts.OutputCSV != "" {
		fmt.Printf("Output:    %s\n", opts.OutputCSV)
	}
	if opts.ReportFile != "" {
		fmt.Printf("Report:    %s\n", opts.ReportFile)
	}
}

// printSummary prints the extraction summary
func printSummary(stats *extraction.Stats, opts Options) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Complete! %d candidate(s), %d row(s) exported\n", stats.Candidates, stats.Rows)
	if opts.FromArchives {
		fmt.Printf("Archives:  %d with a match\n", stats.Archives)
	}
	if stats.FallbackUsed {
		fmt.Println("Filter:    fallback filter was used (primary matched nothing)")
	}
	if stats.MissingPatientID > 0 {
		fmt.Printf("Warning:   %d record(s) missing PatientID\n", stats.MissingPatientID)
	}
	if stats.Errors > 0 {
		fmt.Printf("Errors:    %d recovered (see %s)\n", stats.Errors, opts.ErrorLog)
	}
	if opts.OutputCSV != "" {
		fmt.Printf("Output:    %s\n", opts.OutputCSV)
	}
}

// progressBar represents a terminal progress bar
type progressBar struct {
	width int
}

// newProgressBar creates a new progress bar with specified width
func newProgressBar(width int) *progressBar {
	return &progressBar{width: width}
}

// update updates the progress bar display
func (pb *progressBar) update(current, total int) {
	if total == 0 {
		return
	}

	percent := float64(current) / float64(total)
	filled := int(percent * float64(pb.width))
	if filled > pb.width {
		filled = pb.width
	}

	bar := strings.Repeat("#", filled) + strings.Repeat("-", pb.width-filled)
	fmt.Printf("\r[%s] %3.0f%%  (%d/%d)", bar, percent*100, current, total)
}
