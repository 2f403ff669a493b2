package dicom

import "github.com/suyashkumar/dicom/pkg/tag"

// NotAvailable is the canonical sentinel for a field the source file did
// not carry. Every RawRecord field is populated, either with the raw tag
// value or with this sentinel.
const NotAvailable = "NA"

// RawRecord holds the as-parsed, untyped values of the fields extracted
// from one DICOM file. Values are raw strings exactly as the file carried
// them; type conversion happens later in the normalizer.
type RawRecord struct {
	PatientID         string
	BirthDate         string
	Sex               string
	StudyDate         string
	SeriesTime        string
	Height            string
	Weight            string
	ScannerID         string
	SeriesDescription string
	StudyInstanceUID  string
}

// NewRawRecord extracts the fields of interest from a parsed dataset.
// PatientID is taken strictly from the PatientID tag, never substituted
// from another identifier.
func NewRawRecord(ds *Dataset) RawRecord {
	return RawRecord{
		PatientID:         ds.GetStringOr(tag.PatientID, NotAvailable),
		BirthDate:         ds.GetStringOr(tag.PatientBirthDate, NotAvailable),
		Sex:               ds.GetStringOr(tag.PatientSex, NotAvailable),
		StudyDate:         ds.GetStringOr(tag.StudyDate, NotAvailable),
		SeriesTime:        ds.GetStringOr(tag.SeriesTime, NotAvailable),
		Height:            ds.GetStringOr(tag.PatientSize, NotAvailable),
		Weight:            ds.GetStringOr(tag.PatientWeight, NotAvailable),
		ScannerID:         ds.GetStringOr(tag.DeviceSerialNumber, NotAvailable),
		SeriesDescription: ds.GetStringOr(tag.SeriesDescription, NotAvailable),
		StudyInstanceUID:  ds.GetStringOr(tag.StudyInstanceUID, NotAvailable),
	}
}

// ReadRecord parses a file and extracts its RawRecord in one step.
func ReadRecord(path string) (RawRecord, error) {
	ds, err := ReadMetadata(path)
	if err != nil {
		return RawRecord{}, err
	}
	return NewRawRecord(ds), nil
}
