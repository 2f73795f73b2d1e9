package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func waitForState(t *testing.T, s *GenerationService, id string, want GenerationState) Generation {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		gen, ok := s.Get(id)
		if !ok {
			t.Fatalf("generation %s disappeared", id)
		}
		if gen.State == want {
			return gen
		}
		time.Sleep(5 * time.Millisecond)
	}
	gen, _ := s.Get(id)
	t.Fatalf("generation %s state = %s, want %s", id, gen.State, want)
	return Generation{}
}

func TestGenerationLifecycle(t *testing.T) {
	s := NewGenerationService(zap.NewNop())

	gen := s.Start(GenerationMatchAnalysis, 1, func(ctx context.Context) (string, error) {
		return `{"match_pct": 80}`, nil
	})

	if gen.State != GenerationPending {
		t.Errorf("initial state = %s, want %s", gen.State, GenerationPending)
	}

	done := waitForState(t, s, gen.ID, GenerationReady)
	if done.Result != `{"match_pct": 80}` {
		t.Errorf("result = %q", done.Result)
	}
}

func TestGenerationError(t *testing.T) {
	s := NewGenerationService(zap.NewNop())

	gen := s.Start(GenerationTechnicalPrep, 2, func(ctx context.Context) (string, error) {
		return "", errors.New("model unavailable")
	})

	failed := waitForState(t, s, gen.ID, GenerationError)
	if failed.Error != "model unavailable" {
		t.Errorf("error = %q", failed.Error)
	}
}

func TestGenerationSupersededResultDiscarded(t *testing.T) {
	s := NewGenerationService(zap.NewNop())

	release1 := make(chan struct{})
	gen1 := s.Start(GenerationMatchAnalysis, 5, func(ctx context.Context) (string, error) {
		<-release1
		return "stale", nil
	})

	gen2 := s.Start(GenerationMatchAnalysis, 5, func(ctx context.Context) (string, error) {
		return "fresh", nil
	})

	// Starting gen2 marks the in-flight gen1 stale immediately.
	superseded := waitForState(t, s, gen1.ID, GenerationSuperseded)
	if superseded.Result != "" {
		t.Errorf("superseded generation should carry no result, got %q", superseded.Result)
	}

	// Even after gen1's run lands, its result must not surface.
	close(release1)
	time.Sleep(20 * time.Millisecond)
	still, _ := s.Get(gen1.ID)
	if still.State != GenerationSuperseded || still.Result != "" {
		t.Errorf("stale run leaked: state=%s result=%q", still.State, still.Result)
	}

	fresh := waitForState(t, s, gen2.ID, GenerationReady)
	if fresh.Result != "fresh" {
		t.Errorf("result = %q, want fresh", fresh.Result)
	}
}

func TestGenerationDifferentSubjectsDoNotSupersede(t *testing.T) {
	s := NewGenerationService(zap.NewNop())

	gen1 := s.Start(GenerationPlaybook, 1, func(ctx context.Context) (string, error) { return "a", nil })
	gen2 := s.Start(GenerationPlaybook, 2, func(ctx context.Context) (string, error) { return "b", nil })

	waitForState(t, s, gen1.ID, GenerationReady)
	waitForState(t, s, gen2.ID, GenerationReady)
}

func TestGenerationGetUnknown(t *testing.T) {
	s := NewGenerationService(zap.NewNop())
	if _, ok := s.Get("nope"); ok {
		t.Error("unknown id should not resolve")
	}
}
