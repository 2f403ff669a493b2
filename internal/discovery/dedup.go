package discovery

// StudyKey pairs a subject with a study date, both as raw unnormalized
// values. Records sharing a StudyKey belong to the same clinical study.
type StudyKey struct {
	PatientID string
	StudyDate string
}

// SeenStudies records the StudyKeys already claimed during one discovery
// call. It is owned by a single Engine invocation and never shared.
type SeenStudies map[StudyKey]struct{}

// NewSeenStudies returns an empty accumulator.
func NewSeenStudies() SeenStudies {
	return make(SeenStudies)
}

// SeenAndRecord reports whether key was already recorded, recording it if
// not. The first record encountered in traversal order wins.
func (s SeenStudies) SeenAndRecord(key StudyKey) bool {
	if _, ok := s[key]; ok {
		return true
	}
	s[key] = struct{}{}
	return false
}
