package metadata

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	dcm "dicom-metadata/internal/dicom"
	"dicom-metadata/internal/discovery"
)

// placeholderValues are raw forms that mean a value was absent upstream.
var placeholderValues = map[string]bool{
	"":      true,
	"na":    true,
	"n/a":   true,
	"none":  true,
	"nan":   true,
	"null":  true,
	"<nil>": true,
}

// numericToken matches the first signed decimal in free text, tolerating
// unit suffixes like "178 cm".
var numericToken = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// Normalize converts a candidate set into a table, one row per candidate,
// preserving discovery order. It is a pure function of its input: no rows
// are dropped or merged, and field-level conversion failures become
// markers rather than errors.
func Normalize(cs *discovery.CandidateSet) Table {
	rows := make(Table, 0, cs.Len())
	for _, path := range cs.Paths() {
		rec, _ := cs.Get(path)
		rows = append(rows, NormalizeRecord(path, rec))
	}
	return rows
}

// NormalizeRecord converts one RawRecord into a typed row.
func NormalizeRecord(path string, rec dcm.RawRecord) Row {
	return Row{
		FilePath:          CanonicalString(path),
		PatientID:         CanonicalString(rec.PatientID),
		BirthDate:         ParseDate(rec.BirthDate),
		Sex:               CanonicalString(rec.Sex),
		StudyDate:         ParseDate(rec.StudyDate),
		SeriesTime:        CanonicalString(rec.SeriesTime),
		Height:            ParseNumeric(rec.Height),
		Weight:            ParseNumeric(rec.Weight),
		ScannerID:         CanonicalString(rec.ScannerID),
		SeriesDescription: CanonicalString(rec.SeriesDescription),
		StudyInstanceUID:  CanonicalString(rec.StudyInstanceUID),
	}
}

// CanonicalString collapses the raw placeholder forms for "absent" into
// the single NA token; any other value passes through untouched.
func CanonicalString(raw string) string {
	if placeholderValues[strings.ToLower(strings.TrimSpace(raw))] {
		return dcm.NotAvailable
	}
	return raw
}

// ParseDate parses the 8-digit DICOM DA form (YYYYMMDD). Anything else
// yields an invalid Date, never an error.
func ParseDate(raw string) Date {
	s := strings.TrimSpace(raw)
	if len(s) != 8 {
		return Date{}
	}
	t, err := time.Parse("20060102", s)
	if err != nil {
		return Date{}
	}
	return Date{Time: t, Valid: true}
}

// ParseNumeric converts a raw measurement to a float. It tries a direct
// parse first, then falls back to the first signed-decimal token in the
// text, so "178 cm" yields 178. Values with no numeric token, and
// non-finite results, yield an invalid Measurement.
func ParseNumeric(raw string) Measurement {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Measurement{}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && isFinite(v) {
		return Measurement{Value: v, Valid: true}
	}
	if token := numericToken.FindString(s); token != "" {
		if v, err := strconv.ParseFloat(token, 64); err == nil && isFinite(v) {
			return Measurement{Value: v, Valid: true}
		}
	}
	return Measurement{}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
