package storage

import (
	"testing"
)

func testFrames(steps, bodies int) []Frame {
	frames := make([]Frame, steps)
	for i := range frames {
		fr := Frame{T: float64(i) * 0.02, Dt: 0.02, Bodies: make([]BodyState, bodies)}
		for j := range fr.Bodies {
			fr.Bodies[j] = BodyState{
				X:  float64(i + j),
				Y:  float64(i - j),
				VX: 0.5 * float64(j),
				VY: -0.5 * float64(j),
			}
		}
		frames[i] = fr
	}
	return frames
}

func TestSaveLoadRoundtrip(t *testing.T) {
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()

	meta := RunMeta{
		Name:      "roundtrip",
		Seed:      42,
		Dt:        0.02,
		G:         1000,
		NumBodies: 3,
		Adaptive:  true,
		Masses:    []float64{100, 250, 900},
		Metrics:   map[string]float64{"energy_drift": 0.01},
	}
	frames := testFrames(20, 3)

	id, err := st.SaveRun(meta, frames)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := st.Load(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "roundtrip" || got.Seed != 42 || !got.Adaptive {
		t.Errorf("metadata mismatch: %+v", got)
	}
	if got.Steps != 20 {
		t.Errorf("steps %d, want 20", got.Steps)
	}
	if len(got.Masses) != 3 || got.Masses[2] != 900 {
		t.Errorf("masses did not round-trip: %v", got.Masses)
	}
	if got.Metrics["energy_drift"] != 0.01 {
		t.Errorf("metrics did not round-trip: %v", got.Metrics)
	}

	gotFrames, err := st.LoadFrames(id)
	if err != nil {
		t.Fatalf("load frames: %v", err)
	}
	if len(gotFrames) != 20 {
		t.Fatalf("got %d frames, want 20", len(gotFrames))
	}
	if gotFrames[7].T != frames[7].T {
		t.Errorf("frame time mismatch: %f vs %f", gotFrames[7].T, frames[7].T)
	}
	if gotFrames[7].Bodies[2] != frames[7].Bodies[2] {
		t.Errorf("body state mismatch: %+v vs %+v", gotFrames[7].Bodies[2], frames[7].Bodies[2])
	}
}

func TestList(t *testing.T) {
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list empty store: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	for _, name := range []string{"a", "b"} {
		if _, err := st.SaveRun(RunMeta{Name: name, NumBodies: 2}, testFrames(5, 2)); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("got %d runs, want 2", len(runs))
	}
}

func TestLoadMissingRun(t *testing.T) {
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()

	if _, err := st.Load("no_such_run"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestEmptyFrames(t *testing.T) {
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()

	id, err := st.SaveRun(RunMeta{Name: "empty", NumBodies: 2}, nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	frames, err := st.LoadFrames(id)
	if err != nil {
		t.Fatalf("load frames: %v", err)
	}
	if len(frames) != 0 {
		t.Errorf("expected no frames, got %d", len(frames))
	}
}
