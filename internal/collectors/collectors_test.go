package collectors

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"silverradar/internal/aodata"
)

type stubCollector struct {
	fetches atomic.Int64
	fail    bool
}

func (s *stubCollector) Name() string { return "stub" }

func (s *stubCollector) Fetch(ctx context.Context) ([]aodata.PriceQuote, error) {
	s.fetches.Add(1)
	if s.fail {
		return nil, fmt.Errorf("upstream down")
	}
	return []aodata.PriceQuote{{ItemID: "T4_BAG", City: "Martlock", Quality: 1, SellPriceMin: 1000}}, nil
}

func TestRunLoopHandsOffResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	col := &stubCollector{}
	var handled atomic.Int64
	done := make(chan struct{})
	go func() {
		defer close(done)
		RunLoop(ctx, col, 5*time.Millisecond, func(ctx context.Context, quotes []aodata.PriceQuote) error {
			if len(quotes) != 1 {
				t.Errorf("quotes = %d", len(quotes))
			}
			if handled.Add(1) >= 3 {
				cancel()
			}
			return nil
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after cancel")
	}
	if handled.Load() < 3 {
		t.Errorf("handled %d passes", handled.Load())
	}
}

func TestRunLoopSurvivesFetchErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	col := &stubCollector{fail: true}
	done := make(chan struct{})
	go func() {
		defer close(done)
		RunLoop(ctx, col, 5*time.Millisecond, func(ctx context.Context, quotes []aodata.PriceQuote) error {
			t.Error("handler must not run on fetch failure")
			return nil
		})
	}()

	for col.fetches.Load() < 3 {
		time.Sleep(time.Millisecond)
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after cancel")
	}
}
