package discovery

import dcm "dicom-metadata/internal/dicom"

// CandidateSet maps file paths to their RawRecords, preserving insertion
// order so downstream rows follow discovery order. At most one entry per
// path; duplicate adds are ignored.
type CandidateSet struct {
	paths   []string
	records map[string]dcm.RawRecord
}

// NewCandidateSet returns an empty set.
func NewCandidateSet() *CandidateSet {
	return &CandidateSet{records: make(map[string]dcm.RawRecord)}
}

// Add records rec under path unless the path is already present.
func (c *CandidateSet) Add(path string, rec dcm.RawRecord) {
	if _, ok := c.records[path]; ok {
		return
	}
	c.paths = append(c.paths, path)
	c.records[path] = rec
}

// Get returns the record for path.
func (c *CandidateSet) Get(path string) (dcm.RawRecord, bool) {
	rec, ok := c.records[path]
	return rec, ok
}

// Len returns the number of entries.
func (c *CandidateSet) Len() int {
	return len(c.paths)
}

// Paths returns the paths in insertion order.
func (c *CandidateSet) Paths() []string {
	out := make([]string, len(c.paths))
	copy(out, c.paths)
	return out
}
