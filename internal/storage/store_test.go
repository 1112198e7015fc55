package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/san-kum/heroviz/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Ticks: 3,
		Series: map[string][]float64{
			"mean_speed":  {0.5, 0.25, 0.125},
			"containment": {1, 1, 1},
		},
		Metrics: map[string]float64{
			"mean_speed":  0.125,
			"containment": 1,
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	st.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return st
}

func TestStoreSaveLoad(t *testing.T) {
	st := newTestStore(t)

	runID, err := st.Save(RunMetadata{Preset: "calm", Seed: 42, Width: 800, Height: 600, Pointer: "orbit"}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID || meta.Seed != 42 || meta.Ticks != 3 || meta.Pointer != "orbit" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Metrics["mean_speed"] != 0.125 {
		t.Errorf("expected mean_speed 0.125, got %f", meta.Metrics["mean_speed"])
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if !reflect.DeepEqual(series, testResult().Series) {
		t.Errorf("series mismatch: got %v", series)
	}
}

func TestStoreList(t *testing.T) {
	st := newTestStore(t)

	first, _ := st.Save(RunMetadata{Preset: "default"}, testResult())
	second, _ := st.Save(RunMetadata{Preset: "storm"}, testResult())
	if err := os.Mkdir(filepath.Join(st.baseDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("expected runs oldest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.Load("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("expected ErrNoRun, got %v", err)
	}
	if _, err := st.LoadSeries("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("expected ErrNoRun, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, RunMetadata{Preset: "dense"}, testResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if data.Meta.Preset != "dense" || data.Meta.Ticks != 3 {
		t.Errorf("unexpected meta %+v", data.Meta)
	}
	if len(data.Series["mean_speed"]) != 3 {
		t.Errorf("expected 3 samples, got %d", len(data.Series["mean_speed"]))
	}
}
