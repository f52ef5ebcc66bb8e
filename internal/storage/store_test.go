package storage

import (
	"testing"
)

func TestSaveListLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	rec := RunRecord{
		Encoding:    "gauss4",
		Particles:   50,
		Iterations:  200,
		Inertia:     0.730,
		Accel:       2.05,
		Seed:        42,
		BestScore:   123.456,
		Best:        []float64{0.1, -0.1, 0.3, 0.7},
		Evaluations: 50 * 201,
	}
	history := []float64{300, 250, 123.456}

	runID, err := st.Save(rec, history)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].ID != runID {
		t.Errorf("expected id %s, got %s", runID, runs[0].ID)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.BestScore != rec.BestScore || loaded.Encoding != rec.Encoding {
		t.Errorf("record mismatch: %+v", loaded)
	}
	if len(loaded.Best) != 4 {
		t.Errorf("expected 4 best coordinates, got %d", len(loaded.Best))
	}

	got, err := st.LoadHistory(runID)
	if err != nil {
		t.Fatalf("load history failed: %v", err)
	}
	if len(got) != len(history) {
		t.Fatalf("expected %d history entries, got %d", len(history), len(got))
	}
	for i := range history {
		if got[i] != history[i] {
			t.Errorf("history entry %d: expected %v, got %v", i, history[i], got[i])
		}
	}
}

func TestListEmptyDir(t *testing.T) {
	st := New(t.TempDir() + "/never-created")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope_123"); err == nil {
		t.Error("expected error for missing run")
	}
}
