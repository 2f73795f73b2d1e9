package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GenerationKind string

const (
	GenerationMatchAnalysis GenerationKind = "match_analysis"
	GenerationTechnicalPrep GenerationKind = "technical_prep"
	GenerationPlaybook      GenerationKind = "playbook"
)

type GenerationState string

const (
	GenerationPending    GenerationState = "pending"
	GenerationReady      GenerationState = "ready"
	GenerationError      GenerationState = "error"
	GenerationSuperseded GenerationState = "superseded"
)

// Generation is one async AI generation job, polled by the client until it
// leaves the pending state.
type Generation struct {
	ID        string          `json:"id"`
	Kind      GenerationKind  `json:"kind"`
	SubjectID uint            `json:"subject_id"`
	State     GenerationState `json:"state"`
	Result    string          `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	seq uint64
}

type genKey struct {
	kind    GenerationKind
	subject uint
}

// GenerationService runs AI generations in the background and keeps their
// results in memory. Starting a new generation for the same (kind, subject)
// supersedes any in-flight one: the stale result is discarded when it
// lands, never overwriting the newer run.
type GenerationService struct {
	Logger  *zap.Logger
	Timeout time.Duration

	mu     sync.Mutex
	jobs   map[string]*Generation
	latest map[genKey]uint64
}

func NewGenerationService(logger *zap.Logger) *GenerationService {
	return &GenerationService{
		Logger:  logger,
		Timeout: 2 * time.Minute,
		jobs:    make(map[string]*Generation),
		latest:  make(map[genKey]uint64),
	}
}

// Start registers a generation and runs it in the background. The returned
// snapshot is immediately pollable via Get.
func (s *GenerationService) Start(kind GenerationKind, subjectID uint, run func(ctx context.Context) (string, error)) *Generation {
	key := genKey{kind: kind, subject: subjectID}
	now := time.Now()

	s.mu.Lock()
	s.latest[key]++
	seq := s.latest[key]

	// Anything still pending for this key is now stale.
	for _, g := range s.jobs {
		if g.Kind == kind && g.SubjectID == subjectID && g.State == GenerationPending {
			g.State = GenerationSuperseded
			g.UpdatedAt = now
		}
	}

	gen := &Generation{
		ID:        uuid.NewString(),
		Kind:      kind,
		SubjectID: subjectID,
		State:     GenerationPending,
		CreatedAt: now,
		UpdatedAt: now,
		seq:       seq,
	}
	s.jobs[gen.ID] = gen
	snapshot := *gen
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
		defer cancel()

		result, err := run(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()

		// A newer run started while we were in flight: discard.
		if s.latest[key] != seq {
			if gen.State == GenerationPending {
				gen.State = GenerationSuperseded
				gen.UpdatedAt = time.Now()
			}
			s.Logger.Debug("generation superseded, result discarded",
				zap.String("id", gen.ID),
				zap.String("kind", string(kind)),
				zap.Uint("subject_id", subjectID),
			)
			return
		}

		gen.UpdatedAt = time.Now()
		if err != nil {
			gen.State = GenerationError
			gen.Error = err.Error()
			s.Logger.Warn("generation failed",
				zap.String("id", gen.ID),
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
			return
		}
		gen.State = GenerationReady
		gen.Result = result
	}()

	return &snapshot
}

// Get returns a snapshot of a generation, or false when the ID is unknown.
func (s *GenerationService) Get(id string) (Generation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gen, ok := s.jobs[id]
	if !ok {
		return Generation{}, false
	}
	return *gen, true
}
