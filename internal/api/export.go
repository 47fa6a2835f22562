package api

import (
	"context"
	"net/http"
)

// ExportClient fetches synthesis exports. The backend generates the binary;
// the client only retrieves it and hands it to the caller for saving.
type ExportClient struct {
	transport *Transport
}

// NewExportClient creates an export client.
func NewExportClient(t *Transport) *ExportClient {
	return &ExportClient{transport: t}
}

// PDF exports a case's synthesis as a PDF document.
func (c *ExportClient) PDF(ctx context.Context, caseID string) ([]byte, error) {
	if caseID == "" {
		return nil, validationErrorf("case id is required")
	}
	return c.transport.DoRaw(ctx, http.MethodGet, "/api/cases/"+caseID+"/export/pdf")
}

// Word exports a case's synthesis as a Word document.
func (c *ExportClient) Word(ctx context.Context, caseID string) ([]byte, error) {
	if caseID == "" {
		return nil, validationErrorf("case id is required")
	}
	return c.transport.DoRaw(ctx, http.MethodGet, "/api/cases/"+caseID+"/export/docx")
}
