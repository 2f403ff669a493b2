package extraction

import (
	"archive/zip"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dcm "dicom-metadata/internal/dicom"
	"dicom-metadata/internal/discovery"
	"dicom-metadata/internal/metadata"
	"dicom-metadata/internal/report"
)

func rawRecord(patientID, studyDate, description string) dcm.RawRecord {
	return dcm.RawRecord{
		PatientID:         patientID,
		BirthDate:         dcm.NotAvailable,
		Sex:               dcm.NotAvailable,
		StudyDate:         studyDate,
		SeriesTime:        dcm.NotAvailable,
		Height:            dcm.NotAvailable,
		Weight:            dcm.NotAvailable,
		ScannerID:         dcm.NotAvailable,
		SeriesDescription: description,
		StudyInstanceUID:  dcm.NotAvailable,
	}
}

func fakeParser(records map[string]dcm.RawRecord, failing map[string]error) discovery.Parser {
	return discovery.ParserFunc(func(path string) (dcm.RawRecord, error) {
		name := filepath.Base(path)
		if err, ok := failing[name]; ok {
			return dcm.RawRecord{}, err
		}
		if rec, ok := records[name]; ok {
			return rec, nil
		}
		return dcm.RawRecord{}, dcm.ErrNotDICOM
	})
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
}

func readCSVRows(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRunFolderMode(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.dcm", "b.dcm", "c.dcm", "broken.dcm", "notes.txt")

	parser := fakeParser(map[string]dcm.RawRecord{
		"a.dcm": rawRecord("P1", "20240101", "Stress_Perf"),
		"b.dcm": rawRecord("P1", "20240101", "Rest_Perf"),
		"c.dcm": rawRecord("P2", "20240102", "Stress_Perf"),
	}, map[string]error{
		"broken.dcm": errors.New("truncated element"),
	})

	csvPath := filepath.Join(dir, "out.csv")
	reportPath := filepath.Join(dir, "run.json")
	x := New(WithParser(parser))
	stats, err := x.RunWithProgress(Config{
		InputFolder:  dir,
		Indicators:   []string{"stress", "perf"},
		OutputCSV:    csvPath,
		ReportFile:   reportPath,
		ErrorLog:     filepath.Join(dir, "errors.log"),
		OutputWriter: func(string) {},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Candidates)
	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 1, stats.Errors)
	assert.False(t, stats.FallbackUsed)

	rows := readCSVRows(t, csvPath)
	require.Len(t, rows, 3) // header + A + C
	assert.Equal(t, "P1", rows[1][1])
	assert.Equal(t, "P2", rows[2][1])

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var run report.Run
	require.NoError(t, json.Unmarshal(data, &run))
	assert.NotEmpty(t, run.RunID)
	assert.Equal(t, 2, run.Rows)
	assert.Equal(t, 1, run.Errors)
}

func TestRunFolderModeFallback(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.dcm", "b.dcm")

	parser := fakeParser(map[string]dcm.RawRecord{
		"a.dcm": rawRecord("P1", "20240101", "Rest_Perf"),
		"b.dcm": rawRecord("P2", "20240102", "Rest_Perf"),
	}, nil)

	x := New(WithParser(parser))
	stats, err := x.Run(Config{
		InputFolder:        dir,
		Indicators:         []string{"stress", "perf"},
		FallbackIndicators: []string{"perf"},
		OutputWriter:       func(string) {},
	})
	require.NoError(t, err)

	assert.True(t, stats.FallbackUsed)
	assert.Equal(t, 2, stats.Rows)
}

func TestRunArchiveModeMergesSearchTexts(t *testing.T) {
	dir := t.TempDir()

	writeArchive := func(name string, entries ...string) {
		file, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		w := zip.NewWriter(file)
		for _, entry := range entries {
			f, err := w.Create(entry)
			require.NoError(t, err)
			_, err = f.Write([]byte("x"))
			require.NoError(t, err)
		}
		require.NoError(t, w.Close())
		require.NoError(t, file.Close())
	}
	writeArchive("p1.zip", "stress1.dcm", "rest1.dcm")
	writeArchive("p2.zip", "rest2.dcm")

	parser := fakeParser(map[string]dcm.RawRecord{
		"stress1.dcm": rawRecord("P1", "20240101", "Stress_Perf"),
		"rest1.dcm":   rawRecord("P1", "20240101", "Rest_Perf"),
		"rest2.dcm":   rawRecord("P2", "20240102", "Rest_Perf"),
	}, nil)

	x := New(WithParser(parser))
	stats, err := x.Run(Config{
		InputFolder:  dir,
		FromArchives: true,
		SearchTexts:  []string{"stress", "rest"},
		OutputWriter: func(string) {},
	})
	require.NoError(t, err)

	// stress pass matches p1 only; rest pass matches both archives.
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 3, stats.Archives)

	table := x.Table()
	require.Len(t, table, 3)
	assert.Equal(t, "Stress_Perf", table[0].SeriesDescription)
}

func TestRunArchiveModeNeedsSearchText(t *testing.T) {
	x := New(WithParser(fakeParser(nil, nil)))
	_, err := x.Run(Config{
		InputFolder:  t.TempDir(),
		FromArchives: true,
		OutputWriter: func(string) {},
	})
	assert.Error(t, err)
}

func TestRunCountsMissingPatientID(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.dcm")

	parser := fakeParser(map[string]dcm.RawRecord{
		"a.dcm": rawRecord("NA", "20240101", "Stress_Perf"),
	}, nil)

	x := New(WithParser(parser))
	stats, err := x.Run(Config{
		InputFolder:  dir,
		Indicators:   []string{"stress"},
		OutputWriter: func(string) {},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.MissingPatientID)
	assert.Equal(t, 1, stats.Rows, "records without PatientID are kept")
}

func TestSaveCSVBeforeRunIsNoOp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "never.csv")

	var notices []string
	x := New(WithParser(fakeParser(nil, nil)))
	err := x.SaveCSV(path, func(s string) { notices = append(notices, s) })

	require.NoError(t, err)
	assert.Len(t, notices, 1)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMerge(t *testing.T) {
	t1 := metadata.Table{{PatientID: "P1"}, {PatientID: "P2"}}
	t2 := metadata.Table{{PatientID: "P3"}}

	merged := Merge(t1, t2)

	require.Len(t, merged, 3)
	assert.Equal(t, "P1", merged[0].PatientID)
	assert.Equal(t, "P3", merged[2].PatientID)

	assert.NotNil(t, Merge(), "merging nothing still yields a non-nil table")
}
