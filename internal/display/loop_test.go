package display

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"goalwatch/internal/nhl"
)

type countingSource struct {
	renders atomic.Int64
	err     error
}

func (s *countingSource) Scoreboard(_ context.Context, _ string) (*nhl.ScoreboardDoc, error) {
	s.renders.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &nhl.ScoreboardDoc{}, nil
}

type countingRenderer struct {
	renders atomic.Int64
}

func (r *countingRenderer) Render(_ context.Context, _ *nhl.ScoreboardDoc) error {
	r.renders.Add(1)
	return nil
}

func TestRefresh_FetchesAndRenders(t *testing.T) {
	source := &countingSource{}
	renderer := &countingRenderer{}

	if err := Refresh(context.Background(), source, renderer); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if got := renderer.renders.Load(); got != 1 {
		t.Fatalf("expected 1 render, got %d", got)
	}
}

func TestRefresh_FetchErrorSkipsRender(t *testing.T) {
	source := &countingSource{err: errors.New("upstream down")}
	renderer := &countingRenderer{}

	if err := Refresh(context.Background(), source, renderer); err == nil {
		t.Fatal("expected error from Refresh")
	}
	if got := renderer.renders.Load(); got != 0 {
		t.Fatalf("expected 0 renders, got %d", got)
	}
}

func TestLoop_RendersUntilCancelled(t *testing.T) {
	source := &countingSource{}
	renderer := &countingRenderer{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Loop(ctx, source, renderer, time.Millisecond, nil)
	}()

	deadline := time.After(2 * time.Second)
	for renderer.renders.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("loop never rendered twice")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after cancel")
	}
}

func TestLoop_ContinuesAfterFetchFailure(t *testing.T) {
	source := &countingSource{err: errors.New("upstream down")}
	renderer := &countingRenderer{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Loop(ctx, source, renderer, time.Millisecond, nil)
	}()

	deadline := time.After(2 * time.Second)
	for source.renders.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("loop stopped retrying after failures")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done
}
