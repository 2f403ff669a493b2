package discovery

import "testing"

func TestSeenAndRecord(t *testing.T) {
	seen := NewSeenStudies()

	k1 := StudyKey{PatientID: "P1", StudyDate: "20240101"}
	k2 := StudyKey{PatientID: "P1", StudyDate: "20240202"}
	k3 := StudyKey{PatientID: "P2", StudyDate: "20240101"}

	if seen.SeenAndRecord(k1) {
		t.Error("first occurrence of k1 reported as seen")
	}
	if !seen.SeenAndRecord(k1) {
		t.Error("second occurrence of k1 not reported as seen")
	}
	if seen.SeenAndRecord(k2) {
		t.Error("same patient, different date must be a distinct study")
	}
	if seen.SeenAndRecord(k3) {
		t.Error("different patient, same date must be a distinct study")
	}
}

func TestCandidateSetOrderAndUniqueness(t *testing.T) {
	set := NewCandidateSet()
	set.Add("/x/b.dcm", rawRecord("P1", "20240101", "Stress_Perf"))
	set.Add("/x/a.dcm", rawRecord("P2", "20240102", "Stress_Perf"))
	set.Add("/x/b.dcm", rawRecord("P3", "20240103", "Rest"))

	if set.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (duplicate path ignored)", set.Len())
	}

	paths := set.Paths()
	if paths[0] != "/x/b.dcm" || paths[1] != "/x/a.dcm" {
		t.Errorf("Paths = %v, want insertion order [/x/b.dcm /x/a.dcm]", paths)
	}

	rec, ok := set.Get("/x/b.dcm")
	if !ok || rec.PatientID != "P1" {
		t.Errorf("Get returned %+v, want the first record for the path", rec)
	}
}
