package api

import (
	"context"
	"net/http"

	"github.com/plaide-ai/intake/internal/model"
)

// AnalysisClient provides typed operations on analysis runs.
type AnalysisClient struct {
	transport *Transport
}

// NewAnalysisClient creates an analysis client.
func NewAnalysisClient(t *Transport) *AnalysisClient {
	return &AnalysisClient{transport: t}
}

// Start asks the backend to analyze a case's evidence.
func (c *AnalysisClient) Start(ctx context.Context, caseID string) (*model.StartAnalysisResponse, error) {
	if caseID == "" {
		return nil, validationErrorf("case id is required")
	}

	var resp model.StartAnalysisResponse
	if err := c.transport.Do(ctx, http.MethodPost, "/api/cases/"+caseID+"/analyze", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status fetches the current state of a case's analysis run.
func (c *AnalysisClient) Status(ctx context.Context, caseID string) (*model.AnalysisStatusResponse, error) {
	if caseID == "" {
		return nil, validationErrorf("case id is required")
	}

	var resp model.AnalysisStatusResponse
	if err := c.transport.Do(ctx, http.MethodGet, "/api/cases/"+caseID+"/analyze/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
