package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dicom-metadata/internal/metadata"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestWriteCSV(t *testing.T) {
	table := metadata.Table{
		{
			FilePath:          "/data/a.dcm",
			PatientID:         "P1",
			BirthDate:         metadata.Date{Time: time.Date(1985, 3, 7, 0, 0, 0, 0, time.UTC), Valid: true},
			Sex:               "F",
			StudyDate:         metadata.Date{},
			SeriesTime:        "120000",
			Height:            metadata.Measurement{Value: 178, Valid: true},
			Weight:            metadata.Measurement{},
			ScannerID:         "NA",
			SeriesDescription: "Stress_Perf",
			StudyInstanceUID:  "1.2.3",
		},
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(table, path, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 2 {
		t.Fatalf("got %d csv rows, want header + 1", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(Header, ",") {
		t.Errorf("header = %v, want %v", rows[0], Header)
	}

	got := rows[1]
	want := []string{"/data/a.dcm", "P1", "1985-03-07", "F", "NA", "120000", "178", "NA", "NA", "Stress_Perf", "1.2.3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %s = %q, want %q", Header[i], got[i], want[i])
		}
	}
}

func TestWriteCSVEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := WriteCSV(metadata.Table{}, path, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 1 {
		t.Errorf("empty table wrote %d rows, want header only", len(rows))
	}
}

func TestWriteCSVNilTableIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "never.csv")

	var notices []string
	err := WriteCSV(nil, path, func(s string) { notices = append(notices, s) })
	if err != nil {
		t.Fatalf("nil table must not fail: %v", err)
	}

	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("nil table must not create a file")
	}
	if len(notices) != 1 {
		t.Errorf("expected one diagnostic notice, got %v", notices)
	}
}
