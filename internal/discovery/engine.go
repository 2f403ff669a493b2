// Package discovery locates candidate DICOM records beneath folder and
// archive roots, filtering on the series description and collapsing
// matches to one per study.
package discovery

import (
	"errors"
	"fmt"

	"dicom-metadata/internal/archive"
	dcm "dicom-metadata/internal/dicom"
)

// Parser turns a file path into a RawRecord. Files that are not DICOM
// must be reported with dicom.ErrNotDICOM.
type Parser interface {
	Parse(path string) (dcm.RawRecord, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(path string) (dcm.RawRecord, error)

// Parse implements Parser.
func (f ParserFunc) Parse(path string) (dcm.RawRecord, error) { return f(path) }

// FileParser is the production Parser backed by the DICOM reader.
func FileParser() Parser {
	return ParserFunc(dcm.ReadRecord)
}

// ErrorSink receives per-file failures that were recovered during a scan.
type ErrorSink interface {
	Log(path, msg string)
}

// Engine composes the walker, parser and archive expander into the four
// retrieval modes. One Engine invocation owns its accumulators; engines
// are cheap and not meant to be shared across goroutines.
type Engine struct {
	parser Parser
	output func(string)
	errors ErrorSink
}

// Option configures an Engine.
type Option func(*Engine)

// WithOutput directs progress text to w instead of discarding it.
func WithOutput(w func(string)) Option {
	return func(e *Engine) { e.output = w }
}

// WithErrorSink records recovered per-file failures in sink.
func WithErrorSink(sink ErrorSink) Option {
	return func(e *Engine) { e.errors = sink }
}

// NewEngine creates an Engine around the given parser.
func NewEngine(parser Parser, opts ...Option) *Engine {
	e := &Engine{
		parser: parser,
		output: func(string) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) printf(format string, args ...interface{}) {
	e.output(fmt.Sprintf(format, args...))
}

// parseFile applies the scan failure policy: non-DICOM files are skipped
// quietly, any other per-file error is reported and the scan continues.
func (e *Engine) parseFile(path string) (dcm.RawRecord, bool) {
	rec, err := e.parser.Parse(path)
	if err != nil {
		if errors.Is(err, dcm.ErrNotDICOM) {
			e.printf("  skipped (not DICOM): %s\n", path)
		} else {
			e.printf("  error reading %s: %v\n", path, err)
			if e.errors != nil {
				e.errors.Log(path, err.Error())
			}
		}
		return dcm.RawRecord{}, false
	}
	return rec, true
}

// FirstInFolder walks root and returns the first record, in traversal
// order, whose series description contains text (case-insensitive). The
// walk short-circuits on the first hit. A miss is an absence, not an
// error.
func (e *Engine) FirstInFolder(root, text string) (dcm.RawRecord, bool) {
	e.printf("searching %s for series description containing %q\n", root, text)

	pred := Substring(text)
	var (
		found dcm.RawRecord
		ok    bool
	)
	dcm.WalkFiles(root, func(path string) bool {
		rec, parsed := e.parseFile(path)
		if !parsed {
			return true
		}
		e.printf("  checked: %s -> %s\n", path, rec.SeriesDescription)
		if !pred.Matches(rec.SeriesDescription) {
			return true
		}
		e.printf("  found match: %s\n", path)
		found, ok = rec, true
		return false
	})

	if !ok {
		e.printf("no matching DICOM found in %s\n", root)
	}
	return found, ok
}

// FirstInArchive expands the archive into a temporary directory, searches
// it like FirstInFolder, and removes the directory before returning. An
// unreadable archive counts as zero matches.
func (e *Engine) FirstInArchive(archivePath, text string) (dcm.RawRecord, bool) {
	e.printf("searching archive %s for series description containing %q\n", archivePath, text)

	dir, cleanup, err := archive.Expand(archivePath)
	if err != nil {
		e.printf("  unreadable archive %s: %v\n", archivePath, err)
		if e.errors != nil {
			e.errors.Log(archivePath, err.Error())
		}
		return dcm.RawRecord{}, false
	}
	defer cleanup()

	return e.FirstInFolder(dir, text)
}

// FirstPerArchive walks root for archive files and collects the first
// match inside each, keyed by archive path in traversal order. Archives
// without a match are omitted.
func (e *Engine) FirstPerArchive(root, text string) *CandidateSet {
	e.printf("searching %s for archives to inspect\n", root)

	matches := NewCandidateSet()
	dcm.WalkFiles(root, func(path string) bool {
		if !archive.IsArchive(path) {
			return true
		}
		e.printf(" inspecting archive: %s\n", path)
		if rec, ok := e.FirstInArchive(path, text); ok {
			matches.Add(path, rec)
		}
		return true
	})

	if matches.Len() == 0 {
		e.printf("no matches found in any archive under %s\n", root)
	}
	return matches
}

// OnePerStudy walks root, keeps records whose series description passes
// pred, and collapses them to one per (PatientID, StudyDate): the first
// record seen for a study wins, later ones are dropped even if they also
// pass the predicate. A nil predicate accepts everything.
func (e *Engine) OnePerStudy(root string, pred Predicate) *CandidateSet {
	e.printf("scanning %s for DICOM files matching filter\n", root)

	seen := NewSeenStudies()
	set := NewCandidateSet()
	dcm.WalkFiles(root, func(path string) bool {
		rec, parsed := e.parseFile(path)
		if !parsed {
			return true
		}
		if pred != nil && !pred.Matches(rec.SeriesDescription) {
			return true
		}
		key := StudyKey{PatientID: rec.PatientID, StudyDate: rec.StudyDate}
		if seen.SeenAndRecord(key) {
			return true
		}
		set.Add(path, rec)
		e.printf("  recorded: %s (patient=%s study=%s)\n", path, rec.PatientID, rec.StudyDate)
		return true
	})

	if set.Len() == 0 {
		e.printf("no DICOM files matching the filter found in %s\n", root)
	}
	return set
}
