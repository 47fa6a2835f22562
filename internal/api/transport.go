// Package api provides the HTTP transport and typed resource clients for the
// analysis backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/plaide-ai/intake/internal/auth"
	"github.com/plaide-ai/intake/pkg/logger"
	"github.com/plaide-ai/intake/pkg/metrics"
)

// Transport issues JSON requests against the backend, attaching bearer
// authentication and normalizing every failure into *Error. It does not retry;
// retry policy belongs to the callers.
type Transport struct {
	baseURL string
	client  *http.Client
	tokens  auth.TokenSource
	logger  *logger.Logger
	tracer  trace.Tracer
}

// NewTransport creates a transport for the given backend base URL.
func NewTransport(baseURL string, timeout time.Duration, tokens auth.TokenSource, log *logger.Logger) *Transport {
	return &Transport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  log,
		tracer:  otel.Tracer("intake/transport"),
	}
}

// Do sends one JSON request. body and out may be nil; a 204 response leaves
// out untouched.
func (t *Transport) Do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: "failed to encode request body: " + err.Error()}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reqBody)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	data, status, err := t.send(req, path)
	if err != nil {
		return err
	}

	if out == nil || status == http.StatusNoContent || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Message: "failed to decode response: " + err.Error(), StatusCode: status}
	}
	return nil
}

// DoRaw sends one request and returns the raw response body. Used for binary
// export payloads.
func (t *Transport) DoRaw(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, nil)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	data, _, err := t.send(req, path)
	return data, err
}

// send executes the request and maps every failure onto *Error.
func (t *Transport) send(req *http.Request, path string) ([]byte, int, error) {
	if token := t.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	ctx, span := t.tracer.Start(req.Context(), "backend.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.route", path),
		),
	)
	defer span.End()
	req = req.WithContext(ctx)

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "no response")
		metrics.RecordRequest(req.Method, resourceFromPath(path), "0", time.Since(start).Seconds())
		t.logger.Warn("request failed without response",
			zap.String("method", req.Method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, 0, &Error{Message: err.Error(), StatusCode: 0}
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	metrics.RecordRequest(req.Method, resourceFromPath(path), strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		span.SetStatus(codes.Error, statusMessage(resp.StatusCode))
		return nil, resp.StatusCode, &Error{
			Message:    errorMessage(data, resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}
	if readErr != nil {
		span.RecordError(readErr)
		return nil, resp.StatusCode, &Error{Message: "failed to read response: " + readErr.Error(), StatusCode: resp.StatusCode}
	}

	t.logger.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return data, resp.StatusCode, nil
}

// errorMessage pulls a human message out of an error response body, falling
// back to the generic text for the status code.
func errorMessage(data []byte, status int) string {
	var payload struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		switch {
		case payload.Detail != "":
			return payload.Detail
		case payload.Error != "":
			return payload.Error
		case payload.Message != "":
			return payload.Message
		}
	}
	return statusMessage(status)
}

// resourceFromPath extracts the resource segment for metric labels, keeping
// label cardinality bounded (no IDs).
func resourceFromPath(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/api/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "unknown"
	}
	// Sub-resources like /cases/{id}/chat are labeled by the leaf resource.
	if len(parts) >= 3 {
		return parts[2]
	}
	return parts[0]
}
