// Package export writes normalized metadata tables to delimited files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"dicom-metadata/internal/metadata"
)

// Header is the fixed column order of exported tables. The names mirror
// the DICOM attribute vocabulary downstream analysis scripts expect.
var Header = []string{
	"FilePath",
	"patient_ID",
	"dob",
	"sex",
	"date",
	"time_series",
	"height",
	"weight",
	"scanner_id",
	"SeriesDescription",
	"StudyInstanceUID",
}

// WriteCSV writes the table to path with the fixed header order. A nil
// table means extraction never ran: that is a documented no-op reported
// through output, not a failure. An empty (non-nil) table writes the
// header only.
func WriteCSV(table metadata.Table, path string, output func(string)) error {
	if output == nil {
		output = func(string) {}
	}
	if table == nil {
		output(fmt.Sprintf("no metadata available, skipping export to %s\n", path))
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}
	for _, row := range table {
		record := []string{
			row.FilePath,
			row.PatientID,
			row.BirthDate.String(),
			row.Sex,
			row.StudyDate.String(),
			row.SeriesTime,
			row.Height.String(),
			row.Weight.String(),
			row.ScannerID,
			row.SeriesDescription,
			row.StudyInstanceUID,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("could not write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("could not flush %s: %w", path, err)
	}

	output(fmt.Sprintf("CSV saved: %s (%d rows)\n", path, len(table)))
	return nil
}
