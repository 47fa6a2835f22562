// Package upload drives batch evidence uploads: pre-flight validation,
// sequential per-file transfer with progress, and partial-failure isolation.
package upload

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plaide-ai/intake/internal/api"
	"github.com/plaide-ai/intake/internal/model"
	"github.com/plaide-ai/intake/internal/store"
	"github.com/plaide-ai/intake/pkg/logger"
	"github.com/plaide-ai/intake/pkg/metrics"
)

// Limits are the pre-flight ceilings for one batch.
type Limits struct {
	MaxFiles         int
	MaxFileSizeBytes int64
}

// evidenceService is the slice of the evidence client the orchestrator needs.
type evidenceService interface {
	Upload(ctx context.Context, caseID string, file api.File, onProgress api.ProgressFunc) (*model.UploadResult, error)
	List(ctx context.Context, caseID string) ([]model.EvidenceItem, error)
}

// ProgressFunc receives a snapshot of one file's task after every change.
type ProgressFunc func(index int, task model.UploadTask)

// BatchResult is the aggregate outcome of one batch.
type BatchResult struct {
	Succeeded int
	Failed    int
	Tasks     []model.UploadTask
}

// FailedTasks returns the tasks that did not reach the processed state.
func (r *BatchResult) FailedTasks() []model.UploadTask {
	var failed []model.UploadTask
	for _, t := range r.Tasks {
		if t.State == model.UploadFailed {
			failed = append(failed, t)
		}
	}
	return failed
}

// Orchestrator uploads evidence batches for a case.
type Orchestrator struct {
	evidence evidenceService
	store    *store.Store
	limits   Limits
	logger   *logger.Logger
}

// New creates an upload orchestrator.
func New(evidence evidenceService, st *store.Store, limits Limits, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		evidence: evidence,
		store:    st,
		limits:   limits,
		logger:   log,
	}
}

// Run uploads the given files in input order. Files over the size ceiling are
// failed up front without a network call; a failing upload is recorded on its
// task and the batch continues. A batch over the file-count ceiling never
// starts. onProgress may be nil.
func (o *Orchestrator) Run(ctx context.Context, caseID string, files []api.File, onProgress ProgressFunc) (*BatchResult, error) {
	if caseID == "" {
		return nil, api.NewValidationError("case id is required")
	}
	if len(files) == 0 {
		return nil, api.NewValidationError("at least one file is required")
	}
	if o.limits.MaxFiles > 0 && len(files) > o.limits.MaxFiles {
		return nil, api.NewValidationError(
			fmt.Sprintf("batch of %d files exceeds the limit of %d", len(files), o.limits.MaxFiles))
	}

	log := o.logger.WithCase(caseID)

	// Pre-flight: every file gets a task; oversized ones fail here and are
	// never sent.
	tasks := make([]model.UploadTask, len(files))
	for i, f := range files {
		tasks[i] = model.UploadTask{
			ID:        uuid.Must(uuid.NewV7()).String(),
			Filename:  f.Name,
			SizeBytes: f.Size,
			State:     model.UploadQueued,
		}
		if o.limits.MaxFileSizeBytes > 0 && f.Size > o.limits.MaxFileSizeBytes {
			tasks[i].State = model.UploadFailed
			tasks[i].Reason = fmt.Sprintf("file exceeds the %d byte limit", o.limits.MaxFileSizeBytes)
			metrics.RecordUpload("rejected", 0)
		}
	}

	result := &BatchResult{}

	// Sequential on purpose: progress stays monotonic per file and the
	// backend sees at most one concurrent upload per batch.
	for i := range tasks {
		if tasks[i].State == model.UploadFailed {
			result.Failed++
			emit(onProgress, i, tasks[i])
			continue
		}

		tasks[i].State = model.UploadUploading
		emit(onProgress, i, tasks[i])

		res, err := o.evidence.Upload(ctx, caseID, files[i], func(pct int) {
			tasks[i].Progress = pct
			emit(onProgress, i, tasks[i])
		})
		if err != nil {
			tasks[i].State = model.UploadFailed
			tasks[i].Reason = err.Error()
			result.Failed++
			metrics.RecordUpload("failed", 0)
			log.Warn("evidence upload failed",
				zap.String("file", files[i].Name),
				zap.Error(err),
			)
			emit(onProgress, i, tasks[i])
			continue
		}

		tasks[i].State = model.UploadProcessed
		tasks[i].Progress = 100
		tasks[i].EvidenceID = res.EvidenceID
		result.Succeeded++
		metrics.RecordUpload("succeeded", files[i].Size)
		emit(onProgress, i, tasks[i])
	}

	result.Tasks = tasks

	// The evidence count is server truth; refetch instead of incrementing
	// locally so partial failures cannot cause drift.
	if items, err := o.evidence.List(ctx, caseID); err != nil {
		log.Warn("evidence refetch after batch failed", zap.Error(err))
	} else {
		o.store.SetEvidence(items)
	}

	log.Info("upload batch finished",
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func emit(onProgress ProgressFunc, index int, task model.UploadTask) {
	if onProgress != nil {
		onProgress(index, task)
	}
}
