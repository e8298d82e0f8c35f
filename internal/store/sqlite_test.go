package store

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/me/cpusim/internal/scheduler"
	"github.com/me/cpusim/pkg/model"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleRun(t *testing.T, id string, cfg model.SimulationConfig, created time.Time) *model.Run {
	t.Helper()
	processes := []model.Process{
		{Name: "A", Arrival: 0, Burst: 5, Priority: 2},
		{Name: "B", Arrival: 1, Burst: 3, Priority: 1},
	}
	res, err := scheduler.Run(processes, cfg, nil)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	return &model.Run{
		ID:        id,
		Name:      "sample",
		Config:    res.Config,
		Processes: processes,
		Result:    res,
		CreatedAt: created.UTC().Truncate(time.Millisecond),
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	st := testStore(t)
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestRunCRUD(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	run := sampleRun(t, "run_1", model.SimulationConfig{Algorithm: model.AlgorithmRR, Quantum: 2}, time.Now())

	if err := st.CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	got, err := st.GetRun(ctx, "run_1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got == nil {
		t.Fatal("GetRun returned nil")
	}
	if got.Name != "sample" || got.Config != run.Config {
		t.Errorf("run = %+v, want %+v", got, run)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
	if len(got.Processes) != 2 || got.Processes[1] != run.Processes[1] {
		t.Errorf("processes = %+v", got.Processes)
	}
	if got.Result == nil || got.Result.Duration != 8 || got.Result.Metrics != run.Result.Metrics {
		t.Errorf("result = %+v", got.Result)
	}
	if rec := got.Result.Record("B"); rec == nil || *rec.CompletionTime != *run.Result.Record("B").CompletionTime {
		t.Errorf("record B not restored: %+v", rec)
	}

	deleted, err := st.DeleteRun(ctx, "run_1")
	if err != nil || !deleted {
		t.Fatalf("DeleteRun = %v, %v", deleted, err)
	}
	deleted, err = st.DeleteRun(ctx, "run_1")
	if err != nil || deleted {
		t.Errorf("second DeleteRun = %v, %v; want false, nil", deleted, err)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	st := testStore(t)
	got, err := st.GetRun(context.Background(), "run_missing")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing run, got %+v", got)
	}
}

func TestListRuns(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	fcfs := model.SimulationConfig{Algorithm: model.AlgorithmFCFS}
	rr := model.SimulationConfig{Algorithm: model.AlgorithmRR, Quantum: 1}

	for i := 0; i < 5; i++ {
		cfg := fcfs
		if i%2 == 1 {
			cfg = rr
		}
		run := sampleRun(t, fmt.Sprintf("run_%d", i), cfg, base.Add(time.Duration(i)*time.Minute))
		if err := st.CreateRun(ctx, run); err != nil {
			t.Fatalf("CreateRun %d: %v", i, err)
		}
	}

	runs, total, err := st.ListRuns(ctx, model.ListOptions{Limit: 2})
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if total != 5 || len(runs) != 2 {
		t.Fatalf("total=%d len=%d, want 5 and 2", total, len(runs))
	}
	if runs[0].ID != "run_4" || runs[1].ID != "run_3" {
		t.Errorf("order = %s, %s; want newest first", runs[0].ID, runs[1].ID)
	}

	runs, total, err = st.ListRuns(ctx, model.ListOptions{Limit: 10, Algorithm: "rr"})
	if err != nil {
		t.Fatalf("ListRuns filtered: %v", err)
	}
	if total != 2 || len(runs) != 2 {
		t.Errorf("rr filter: total=%d len=%d, want 2", total, len(runs))
	}
	for _, r := range runs {
		if r.Config.Algorithm != model.AlgorithmRR {
			t.Errorf("filtered list contains %s", r.Config.Algorithm)
		}
	}

	runs, _, err = st.ListRuns(ctx, model.ListOptions{Limit: 10, Offset: 4})
	if err != nil {
		t.Fatalf("ListRuns offset: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "run_0" {
		t.Errorf("offset page = %v", runs)
	}
}

func TestCreateRun_DegenerateResult(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	res, err := scheduler.Run(nil, model.SimulationConfig{Algorithm: model.AlgorithmFCFS}, nil)
	if err != nil {
		t.Fatal(err)
	}
	run := &model.Run{ID: "run_empty", Config: res.Config, Result: res, CreatedAt: time.Now().UTC()}
	if err := st.CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	got, err := st.GetRun(ctx, "run_empty")
	if err != nil || got == nil {
		t.Fatalf("GetRun = %v, %v", got, err)
	}
	if got.Result.Metrics.Defined {
		t.Error("degenerate metrics came back defined")
	}
}
