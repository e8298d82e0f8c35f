package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/me/cpusim/internal/scheduler"
	"github.com/me/cpusim/pkg/model"
)

var workload = []model.Process{
	{Name: "A", Arrival: 0, Burst: 5, Priority: 3},
	{Name: "B", Arrival: 1, Burst: 3, Priority: 1},
	{Name: "C", Arrival: 2, Burst: 1, Priority: 2},
}

func TestCompare_MatchesSequentialRuns(t *testing.T) {
	for _, parallelism := range []int{0, 1, 3} {
		outcomes, err := NewComparer(nil).Compare(context.Background(), workload, Options{Quantum: 2, Parallelism: parallelism})
		if err != nil {
			t.Fatalf("parallelism %d: Compare: %v", parallelism, err)
		}
		variants := Variants(2)
		if len(outcomes) != len(variants) {
			t.Fatalf("got %d outcomes, want %d", len(outcomes), len(variants))
		}
		for i, o := range outcomes {
			if o.Config.Label() != variants[i].Label() {
				t.Errorf("outcome %d = %s, want %s", i, o.Config.Label(), variants[i].Label())
			}
			want, err := scheduler.Run(workload, variants[i], nil)
			if err != nil {
				t.Fatal(err)
			}
			if o.Result.Metrics != want.Metrics {
				t.Errorf("%s: parallel metrics %+v differ from sequential %+v", o.Config.Label(), o.Result.Metrics, want.Metrics)
			}
		}
	}
}

func TestCompare_RunsDoNotShareRecords(t *testing.T) {
	outcomes, err := NewComparer(nil).Compare(context.Background(), workload, DefaultOptions())
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	seen := make(map[*model.ProcessRecord]bool)
	for _, r := range Results(outcomes) {
		for _, rec := range r.Records {
			if seen[rec] {
				t.Fatalf("record %s shared between runs", rec.Name)
			}
			seen[rec] = true
		}
	}
}

func TestCompare_Errors(t *testing.T) {
	c := NewComparer(nil)
	if _, err := c.Compare(context.Background(), workload, Options{Quantum: 0}); !errors.Is(err, model.ErrConfiguration) {
		t.Errorf("zero quantum err = %v, want ErrConfiguration", err)
	}
	bad := []model.Process{{Name: "A", Burst: 0}}
	if _, err := c.Compare(context.Background(), bad, DefaultOptions()); !errors.Is(err, model.ErrInvalidProcess) {
		t.Errorf("invalid workload err = %v, want ErrInvalidProcess", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Compare(ctx, workload, Options{Quantum: 2, Parallelism: 1}); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled ctx err = %v, want context.Canceled", err)
	}
}
