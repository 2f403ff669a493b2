package dicom

import (
	"errors"
	"fmt"
	"os"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// ErrNotDICOM reports that a file could not be interpreted as DICOM.
// Scans treat it as "skip this file", never as a fatal condition.
var ErrNotDICOM = errors.New("not a DICOM file")

// Dataset wraps a parsed DICOM dataset for easier tag access
type Dataset struct {
	Data     dicom.Dataset
	FilePath string
}

// ReadMetadata parses the metadata of a DICOM file, skipping pixel data.
// Files the parser rejects are reported as ErrNotDICOM; anything else
// (open/stat failures) is surfaced as-is.
func ReadMetadata(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("could not stat file: %w", err)
	}

	ds, err := dicom.Parse(file, info.Size(), nil, dicom.SkipPixelData())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDICOM, err)
	}

	return &Dataset{
		Data:     ds,
		FilePath: path,
	}, nil
}

// GetString returns a string value for a tag, or empty string if not found.
func (d *Dataset) GetString(t tag.Tag) string {
	elem, err := d.Data.FindElementByTag(t)
	if err != nil {
		return ""
	}

	if elem.Value == nil {
		return ""
	}

	value := elem.Value.GetValue()
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case []string:
		if len(v) > 0 {
			return v[0]
		}
		return ""
	case string:
		return v
	}

	return fmt.Sprintf("%v", value)
}

// GetStringOr returns the tag value, or fallback when the tag is missing
// or holds no value.
func (d *Dataset) GetStringOr(t tag.Tag, fallback string) string {
	if s := d.GetString(t); s != "" {
		return s
	}
	return fallback
}

// GetSeriesDescription returns the free-text series label.
func (d *Dataset) GetSeriesDescription() string {
	return d.GetString(tag.SeriesDescription)
}

// GetPatientID returns the patient ID.
func (d *Dataset) GetPatientID() string {
	return d.GetString(tag.PatientID)
}

// GetStudyDate returns the study date in its raw YYYYMMDD form.
func (d *Dataset) GetStudyDate() string {
	return d.GetString(tag.StudyDate)
}
