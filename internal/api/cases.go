package api

import (
	"context"
	"net/http"

	"github.com/plaide-ai/intake/internal/model"
)

// CaseClient provides typed operations on cases. Stateless; all state lives on
// the backend.
type CaseClient struct {
	transport *Transport
}

// NewCaseClient creates a case client.
func NewCaseClient(t *Transport) *CaseClient {
	return &CaseClient{transport: t}
}

// Create creates a new case.
func (c *CaseClient) Create(ctx context.Context, req *model.CreateCaseRequest) (*model.Case, error) {
	if req.Title == "" {
		return nil, validationErrorf("case title is required")
	}
	if req.ClientName == "" {
		return nil, validationErrorf("client name is required")
	}

	var created model.Case
	if err := c.transport.Do(ctx, http.MethodPost, "/api/cases", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// List lists all cases.
func (c *CaseClient) List(ctx context.Context) ([]model.Case, error) {
	var resp model.ListCasesResponse
	if err := c.transport.Do(ctx, http.MethodGet, "/api/cases", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cases, nil
}

// Get fetches one case, including its synthesis when available.
func (c *CaseClient) Get(ctx context.Context, id string) (*model.Case, error) {
	if id == "" {
		return nil, validationErrorf("case id is required")
	}

	var cs model.Case
	if err := c.transport.Do(ctx, http.MethodGet, "/api/cases/"+id, nil, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// Update applies a partial update to a case.
func (c *CaseClient) Update(ctx context.Context, id string, req *model.UpdateCaseRequest) (*model.Case, error) {
	if id == "" {
		return nil, validationErrorf("case id is required")
	}

	var updated model.Case
	if err := c.transport.Do(ctx, http.MethodPut, "/api/cases/"+id, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete deletes a case.
func (c *CaseClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return validationErrorf("case id is required")
	}
	return c.transport.Do(ctx, http.MethodDelete, "/api/cases/"+id, nil, nil)
}

// Synthesis fetches the backend-derived synthesis for a case.
func (c *CaseClient) Synthesis(ctx context.Context, id string) (*model.Synthesis, error) {
	if id == "" {
		return nil, validationErrorf("case id is required")
	}

	var syn model.Synthesis
	if err := c.transport.Do(ctx, http.MethodGet, "/api/cases/"+id+"/synthesis", nil, &syn); err != nil {
		return nil, err
	}
	return &syn, nil
}
