// Package analysis starts backend analysis runs and polls them to a terminal
// state, enforcing a single live run per case.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/plaide-ai/intake/internal/api"
	"github.com/plaide-ai/intake/internal/model"
	"github.com/plaide-ai/intake/internal/store"
	"github.com/plaide-ai/intake/pkg/logger"
	"github.com/plaide-ai/intake/pkg/metrics"
)

// ErrAlreadyRunning is returned by Start when the case already has a live run.
// No network call is made in that path.
var ErrAlreadyRunning = errors.New("analysis is already running for this case")

// ErrCancelled is returned by Start when the run was cancelled client-side.
// The backend run is not aborted and may still complete on its own.
var ErrCancelled = errors.New("analysis polling cancelled")

// RunState is the client-side state of one polling session.
type RunState string

const (
	StateIdle      RunState = "idle"
	StateRunning   RunState = "running"
	StateCompleted RunState = "completed"
	StateFailed    RunState = "failed"
)

// Progress is one status snapshot surfaced to the caller on every poll.
type Progress struct {
	Progress    int
	CurrentStep string
}

// ProgressFunc receives a snapshot after each poll tick.
type ProgressFunc func(Progress)

// analysisService is the slice of the analysis client the poller needs.
type analysisService interface {
	Start(ctx context.Context, caseID string) (*model.StartAnalysisResponse, error)
	Status(ctx context.Context, caseID string) (*model.AnalysisStatusResponse, error)
}

// caseService fetches case detail after a run completes.
type caseService interface {
	Get(ctx context.Context, id string) (*model.Case, error)
}

type run struct {
	cancel context.CancelFunc
	state  RunState
}

// Poller drives analysis runs. One live run per case; duplicates are rejected
// before any network call.
type Poller struct {
	analysis analysisService
	cases    caseService
	store    *store.Store
	interval time.Duration
	logger   *logger.Logger

	mu   sync.Mutex
	runs map[string]*run
}

// New creates a poller with the given fixed poll interval.
func New(analysis analysisService, cases caseService, st *store.Store, interval time.Duration, log *logger.Logger) *Poller {
	return &Poller{
		analysis: analysis,
		cases:    cases,
		store:    st,
		interval: interval,
		logger:   log,
		runs:     make(map[string]*run),
	}
}

// State returns the client-side state for a case.
func (p *Poller) State(caseID string) RunState {
	p.mu.Lock()
	defer p.mu.Unlock()
	if r, ok := p.runs[caseID]; ok {
		return r.state
	}
	return StateIdle
}

// Cancel stops polling for a case. It does not instruct the backend to abort;
// a later Status call would still reflect whatever the backend did. Returns
// false when no run is live.
func (p *Poller) Cancel(caseID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, ok := p.runs[caseID]
	if !ok {
		return false
	}
	r.cancel()
	return true
}

// Start triggers backend analysis for the case and blocks until the run
// reaches a terminal state or is cancelled. A completed run refetches the case
// detail into the store so the new synthesis and status become visible.
func (p *Poller) Start(ctx context.Context, caseID string, onProgress ProgressFunc) error {
	if caseID == "" {
		return api.NewValidationError("case id is required")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Claim the slot before touching the network so a concurrent Start is
	// rejected without any call.
	p.mu.Lock()
	if _, exists := p.runs[caseID]; exists {
		p.mu.Unlock()
		return ErrAlreadyRunning
	}
	p.runs[caseID] = &run{cancel: cancel, state: StateRunning}
	p.mu.Unlock()

	metrics.AnalysisRunsActive.Inc()
	defer func() {
		metrics.AnalysisRunsActive.Dec()
		p.mu.Lock()
		delete(p.runs, caseID)
		p.mu.Unlock()
	}()

	log := p.logger.WithCase(caseID)

	if _, err := p.analysis.Start(runCtx, caseID); err != nil {
		p.setState(caseID, StateFailed)
		return fmt.Errorf("failed to start analysis: %w", err)
	}
	log.Info("analysis started", zap.Duration("poll_interval", p.interval))

	ticker := backoff.NewTicker(backoff.NewConstantBackOff(p.interval))
	defer ticker.Stop()

	for {
		select {
		case <-runCtx.Done():
			if err := ctx.Err(); err != nil {
				return err
			}
			log.Info("analysis polling cancelled")
			return ErrCancelled

		case <-ticker.C:
			status, err := p.analysis.Status(runCtx, caseID)
			if err != nil {
				// A single status failure is terminal; the poller never
				// retries past a server-reported error.
				p.setState(caseID, StateFailed)
				metrics.AnalysisPollsTotal.WithLabelValues("error").Inc()
				return fmt.Errorf("analysis status poll failed: %w", err)
			}
			metrics.AnalysisPollsTotal.WithLabelValues(string(status.Status)).Inc()

			if onProgress != nil {
				onProgress(Progress{Progress: status.Progress, CurrentStep: status.CurrentStep})
			}

			switch status.Status {
			case model.AnalysisCompleted:
				p.setState(caseID, StateCompleted)
				p.refreshCase(runCtx, caseID, log)
				log.Info("analysis completed")
				return nil

			case model.AnalysisError:
				p.setState(caseID, StateFailed)
				reason := status.Error
				if reason == "" {
					reason = status.CurrentStep
				}
				return fmt.Errorf("analysis failed: %s", reason)
			}
			// pending / processing: keep polling.
		}
	}
}

func (p *Poller) setState(caseID string, state RunState) {
	p.mu.Lock()
	if r, ok := p.runs[caseID]; ok {
		r.state = state
	}
	p.mu.Unlock()
}

// refreshCase pulls the case detail so the store picks up the new synthesis.
func (p *Poller) refreshCase(ctx context.Context, caseID string, log *logger.Logger) {
	detail, err := p.cases.Get(ctx, caseID)
	if err != nil {
		log.Warn("case refetch after analysis failed", zap.Error(err))
		return
	}
	p.store.SetCurrentCase(detail)
}
