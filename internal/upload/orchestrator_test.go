package upload

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plaide-ai/intake/internal/api"
	"github.com/plaide-ai/intake/internal/model"
	"github.com/plaide-ai/intake/internal/store"
	"github.com/plaide-ai/intake/pkg/logger"
)

type fakeEvidence struct {
	mu        sync.Mutex
	uploaded  []string
	failOn    map[string]error
	listCalls int
	items     []model.EvidenceItem
}

func (f *fakeEvidence) Upload(ctx context.Context, caseID string, file api.File, onProgress api.ProgressFunc) (*model.UploadResult, error) {
	f.mu.Lock()
	f.uploaded = append(f.uploaded, file.Name)
	err := f.failOn[file.Name]
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if onProgress != nil {
		onProgress(50)
		onProgress(100)
	}
	return &model.UploadResult{EvidenceID: "ev-" + file.Name, Status: "uploaded", Filename: file.Name}, nil
}

func (f *fakeEvidence) List(ctx context.Context, caseID string) ([]model.EvidenceItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.items, nil
}

func testFile(name string, size int64) api.File {
	return api.File{Name: name, Size: size, Content: strings.NewReader(strings.Repeat("x", int(size)))}
}

func TestRunOversizedFileRejectedWithoutNetworkCall(t *testing.T) {
	// Three valid files and one over the ceiling: exactly three uploads go
	// out, the fourth fails pre-flight.
	evidence := &fakeEvidence{}
	o := New(evidence, store.New(), Limits{MaxFiles: 10, MaxFileSizeBytes: 1000}, logger.NewNop())

	files := []api.File{
		testFile("a.pdf", 100),
		testFile("b.pdf", 200),
		testFile("c.mp3", 300),
		testFile("enorme.pdf", 5000),
	}

	result, err := o.Run(context.Background(), "case-1", files, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.mp3"}, evidence.uploaded)

	require.Len(t, result.Tasks, 4)
	assert.Equal(t, model.UploadFailed, result.Tasks[3].State)
	assert.Contains(t, result.Tasks[3].Reason, "byte limit")
}

func TestRunIsolatesSingleFileFailure(t *testing.T) {
	evidence := &fakeEvidence{
		failOn: map[string]error{
			"corrompu.pdf": &api.Error{Message: "extraction failed", StatusCode: http.StatusInternalServerError},
		},
	}
	o := New(evidence, store.New(), Limits{MaxFiles: 10, MaxFileSizeBytes: 1 << 20}, logger.NewNop())

	files := []api.File{
		testFile("bon.pdf", 100),
		testFile("corrompu.pdf", 100),
		testFile("autre.pdf", 100),
	}

	result, err := o.Run(context.Background(), "case-1", files, nil)
	require.NoError(t, err, "a failing file must not abort the batch")

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, evidence.uploaded, 3, "all files are attempted")

	failed := result.FailedTasks()
	require.Len(t, failed, 1)
	assert.Equal(t, "corrompu.pdf", failed[0].Filename)
	assert.Contains(t, failed[0].Reason, "extraction failed")
}

func TestRunBatchOverCountCeilingNeverStarts(t *testing.T) {
	evidence := &fakeEvidence{}
	o := New(evidence, store.New(), Limits{MaxFiles: 2, MaxFileSizeBytes: 1 << 20}, logger.NewNop())

	files := []api.File{
		testFile("a.pdf", 10),
		testFile("b.pdf", 10),
		testFile("c.pdf", 10),
	}

	_, err := o.Run(context.Background(), "case-1", files, nil)
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
	assert.Empty(t, evidence.uploaded, "no network call before pre-flight passes")
	assert.Zero(t, evidence.listCalls)
}

func TestRunEmptyBatchRejected(t *testing.T) {
	o := New(&fakeEvidence{}, store.New(), Limits{}, logger.NewNop())
	_, err := o.Run(context.Background(), "case-1", nil, nil)
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
}

func TestRunMissingCaseIDRejected(t *testing.T) {
	o := New(&fakeEvidence{}, store.New(), Limits{}, logger.NewNop())
	_, err := o.Run(context.Background(), "", []api.File{testFile("a.pdf", 1)}, nil)
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
}

func TestRunRefetchesEvidenceListIntoStore(t *testing.T) {
	evidence := &fakeEvidence{
		items: []model.EvidenceItem{
			{ID: "ev-1", Filename: "a.pdf"},
			{ID: "ev-2", Filename: "b.pdf"},
		},
	}
	st := store.New()
	o := New(evidence, st, Limits{MaxFiles: 10, MaxFileSizeBytes: 1 << 20}, logger.NewNop())

	_, err := o.Run(context.Background(), "case-1", []api.File{testFile("a.pdf", 10)}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, evidence.listCalls, "count comes from a refetch, not a local increment")
	assert.Len(t, st.Evidence(), 2)
}

func TestRunReportsPerFileProgress(t *testing.T) {
	evidence := &fakeEvidence{}
	o := New(evidence, store.New(), Limits{MaxFiles: 10, MaxFileSizeBytes: 1 << 20}, logger.NewNop())

	var snapshots []model.UploadTask
	_, err := o.Run(context.Background(), "case-1", []api.File{testFile("a.pdf", 10)},
		func(index int, task model.UploadTask) {
			assert.Equal(t, 0, index)
			snapshots = append(snapshots, task)
		})
	require.NoError(t, err)

	require.NotEmpty(t, snapshots)
	assert.Equal(t, model.UploadUploading, snapshots[0].State)
	last := snapshots[len(snapshots)-1]
	assert.Equal(t, model.UploadProcessed, last.State)
	assert.Equal(t, 100, last.Progress)
	assert.Equal(t, "ev-a.pdf", last.EvidenceID)
}
