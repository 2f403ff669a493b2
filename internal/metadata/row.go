// Package metadata converts raw DICOM records into typed, export-ready
// rows.
package metadata

import (
	"strconv"
	"time"

	dcm "dicom-metadata/internal/dicom"
)

// Date is a calendar date that may have been unparseable upstream.
type Date struct {
	Time  time.Time
	Valid bool
}

// String renders the date as YYYY-MM-DD, or the NA token when invalid.
func (d Date) String() string {
	if !d.Valid {
		return dcm.NotAvailable
	}
	return d.Time.Format("2006-01-02")
}

// Measurement is a numeric value that may have been unparseable upstream.
type Measurement struct {
	Value float64
	Valid bool
}

// String renders the value in its shortest form, or the NA token when
// invalid.
func (m Measurement) String() string {
	if !m.Valid {
		return dcm.NotAvailable
	}
	return strconv.FormatFloat(m.Value, 'g', -1, 64)
}

// Row is the typed representation of one RawRecord.
type Row struct {
	FilePath          string
	PatientID         string
	BirthDate         Date
	Sex               string
	StudyDate         Date
	SeriesTime        string
	Height            Measurement
	Weight            Measurement
	ScannerID         string
	SeriesDescription string
	StudyInstanceUID  string
}

// Table is an ordered sequence of rows, one per candidate, in discovery
// order.
type Table []Row
