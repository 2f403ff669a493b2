// Package extraction runs the batch pipeline: discover candidate DICOM
// files, normalize their metadata into a table, and export it.
package extraction

import (
	"errors"
	"fmt"
	"path/filepath"

	dcm "dicom-metadata/internal/dicom"
	"dicom-metadata/internal/discovery"
	"dicom-metadata/internal/export"
	"dicom-metadata/internal/metadata"
	"dicom-metadata/internal/report"
)

// Config holds one extraction run's settings.
type Config struct {
	InputFolder string

	// FromArchives selects the archive strategy: find the first match
	// inside every .zip under InputFolder, one discovery pass per entry
	// in SearchTexts. Otherwise the folder strategy scans loose files
	// and keeps one record per study.
	FromArchives bool
	SearchTexts  []string

	// Indicators form the primary folder-mode predicate: a record is
	// kept when its normalized series description contains every word.
	// FallbackIndicators are retried when the primary filter matches
	// nothing in the whole folder.
	Indicators         []string
	FallbackIndicators []string

	OutputCSV  string
	ReportFile string
	ErrorLog   string

	OutputWriter func(string)
}

// Stats summarizes one extraction run.
type Stats struct {
	Candidates       int
	Rows             int
	Archives         int
	MissingPatientID int
	Errors           int
	FallbackUsed     bool
}

// ProgressCallback is called as candidate records are normalized.
type ProgressCallback func(current, total int, name, status string)

// Extractor runs discovery and normalization over one input folder. It
// keeps the last built table so it can be re-exported; the table is nil
// until a run completes.
type Extractor struct {
	parser discovery.Parser
	table  metadata.Table
}

// New creates an Extractor backed by the real DICOM parser unless
// overridden by options.
func New(opts ...Option) *Extractor {
	x := &Extractor{parser: discovery.FileParser()}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Table returns the table built by the last run, or nil.
func (x *Extractor) Table() metadata.Table {
	return x.table
}

// Run executes the pipeline without progress reporting.
func (x *Extractor) Run(cfg Config) (*Stats, error) {
	return x.RunWithProgress(cfg, nil)
}

// RunWithProgress executes the pipeline: discovery per cfg's strategy,
// normalization (with per-record progress), then CSV export and run
// report when configured.
func (x *Extractor) RunWithProgress(cfg Config, cb ProgressCallback) (*Stats, error) {
	output := cfg.OutputWriter
	if output == nil {
		output = func(s string) { fmt.Print(s) }
	}
	if cfg.InputFolder == "" {
		return nil, errors.New("input folder is required")
	}

	var errLog *report.ErrorLogger
	if cfg.ErrorLog != "" {
		var err error
		errLog, err = report.NewErrorLogger(cfg.ErrorLog)
		if err != nil {
			return nil, fmt.Errorf("could not create error log: %w", err)
		}
		defer errLog.Close()
	}

	engineOpts := []discovery.Option{discovery.WithOutput(output)}
	if errLog != nil {
		engineOpts = append(engineOpts, discovery.WithErrorSink(errLog))
	}
	engine := discovery.NewEngine(x.parser, engineOpts...)

	run := report.NewRun(cfg.InputFolder)
	run.SearchTexts = cfg.SearchTexts
	run.Indicators = cfg.Indicators

	stats := &Stats{}
	var table metadata.Table

	if cfg.FromArchives {
		if len(cfg.SearchTexts) == 0 {
			return nil, errors.New("archive mode needs at least one search text")
		}
		tables := make([]metadata.Table, 0, len(cfg.SearchTexts))
		for _, text := range cfg.SearchTexts {
			set := engine.FirstPerArchive(cfg.InputFolder, text)
			stats.Candidates += set.Len()
			stats.Archives += set.Len()
			tables = append(tables, x.normalize(set, output, cb, stats))
		}
		table = Merge(tables...)
	} else {
		set := engine.OnePerStudy(cfg.InputFolder, discovery.AllIndicators(cfg.Indicators))
		if set.Len() == 0 && len(cfg.FallbackIndicators) > 0 {
			output(fmt.Sprintf("no matches for primary filter %v, retrying with %v\n",
				cfg.Indicators, cfg.FallbackIndicators))
			set = engine.OnePerStudy(cfg.InputFolder, discovery.AllIndicators(cfg.FallbackIndicators))
			stats.FallbackUsed = true
		}
		stats.Candidates = set.Len()
		table = x.normalize(set, output, cb, stats)
	}

	x.table = table
	stats.Rows = len(table)
	if errLog != nil {
		stats.Errors = errLog.Count()
	}

	if cfg.OutputCSV != "" {
		if err := export.WriteCSV(table, cfg.OutputCSV, output); err != nil {
			return nil, err
		}
	}

	if cfg.ReportFile != "" {
		run.Candidates = stats.Candidates
		run.Rows = stats.Rows
		run.Archives = stats.Archives
		run.Errors = stats.Errors
		run.Fallback = stats.FallbackUsed
		run.CSVPath = cfg.OutputCSV
		run.Finish()
		if err := run.Save(cfg.ReportFile); err != nil {
			return nil, err
		}
		output(fmt.Sprintf("run report saved: %s\n", cfg.ReportFile))
	}

	return stats, nil
}

// normalize converts a candidate set row by row so progress and the
// missing-PatientID warning can be surfaced per file. Records without a
// PatientID are kept, carrying the NA token.
func (x *Extractor) normalize(set *discovery.CandidateSet, output func(string), cb ProgressCallback, stats *Stats) metadata.Table {
	paths := set.Paths()
	table := make(metadata.Table, 0, len(paths))
	for i, path := range paths {
		rec, _ := set.Get(path)
		row := metadata.NormalizeRecord(path, rec)
		if row.PatientID == dcm.NotAvailable {
			stats.MissingPatientID++
			output(fmt.Sprintf("  warning: missing PatientID for %s, recorded as %s\n",
				path, dcm.NotAvailable))
		}
		table = append(table, row)
		if cb != nil {
			cb(i+1, len(paths), filepath.Base(path), "normalized")
		}
	}
	return table
}

// SaveCSV re-exports the last built table. Calling it before any run is a
// documented no-op with a diagnostic, not a failure.
func (x *Extractor) SaveCSV(path string, output func(string)) error {
	return export.WriteCSV(x.table, path, output)
}

// Merge concatenates tables in argument order, preserving row order
// within each. It backs the merged stress+rest export.
func Merge(tables ...metadata.Table) metadata.Table {
	merged := metadata.Table{}
	for _, t := range tables {
		merged = append(merged, t...)
	}
	return merged
}
