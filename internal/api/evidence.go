package api

import (
	"context"
	"net/http"

	"github.com/plaide-ai/intake/internal/model"
)

// EvidenceClient provides typed operations on evidence items.
type EvidenceClient struct {
	transport *Transport
}

// NewEvidenceClient creates an evidence client.
func NewEvidenceClient(t *Transport) *EvidenceClient {
	return &EvidenceClient{transport: t}
}

// Upload uploads one file as evidence for a case. onProgress may be nil.
func (c *EvidenceClient) Upload(ctx context.Context, caseID string, file File, onProgress ProgressFunc) (*model.UploadResult, error) {
	if caseID == "" {
		return nil, validationErrorf("case id is required")
	}
	if file.Name == "" {
		return nil, validationErrorf("file name is required")
	}

	var result model.UploadResult
	if err := c.transport.Upload(ctx, "/api/cases/"+caseID+"/evidence", file, onProgress, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List lists a case's evidence items.
func (c *EvidenceClient) List(ctx context.Context, caseID string) ([]model.EvidenceItem, error) {
	if caseID == "" {
		return nil, validationErrorf("case id is required")
	}

	var resp model.ListEvidenceResponse
	if err := c.transport.Do(ctx, http.MethodGet, "/api/cases/"+caseID+"/evidence", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Evidence, nil
}

// Get fetches one evidence item, including extracted content once processed.
func (c *EvidenceClient) Get(ctx context.Context, evidenceID string) (*model.EvidenceItem, error) {
	if evidenceID == "" {
		return nil, validationErrorf("evidence id is required")
	}

	var item model.EvidenceItem
	if err := c.transport.Do(ctx, http.MethodGet, "/api/evidence/"+evidenceID, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete deletes an evidence item.
func (c *EvidenceClient) Delete(ctx context.Context, evidenceID string) error {
	if evidenceID == "" {
		return validationErrorf("evidence id is required")
	}
	return c.transport.Do(ctx, http.MethodDelete, "/api/evidence/"+evidenceID, nil, nil)
}
