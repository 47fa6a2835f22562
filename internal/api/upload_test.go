package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadSendsMultipartBody(t *testing.T) {
	var gotFilename, gotField, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		data, err := io.ReadAll(file)
		require.NoError(t, err)

		gotFilename = header.Filename
		gotContent = string(data)
		gotField = r.FormValue("name")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"evidence_id":"ev-1","status":"uploaded","filename":"contrat.pdf"}`))
	}))
	defer srv.Close()

	tr := newTestTransport(srv.URL, "tok")
	file := File{
		Name:     "contrat.pdf",
		MimeType: "application/pdf",
		Size:     12,
		Content:  strings.NewReader("fake pdf data"),
	}

	var out struct {
		EvidenceID string `json:"evidence_id"`
	}
	require.NoError(t, tr.Upload(context.Background(), "/api/cases/c1/evidence", file, nil, &out))

	assert.Equal(t, "contrat.pdf", gotFilename)
	assert.Equal(t, "contrat.pdf", gotField)
	assert.Equal(t, "fake pdf data", gotContent)
	assert.Equal(t, "ev-1", out.EvidenceID)
}

func TestUploadReportsMonotonicProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tr := newTestTransport(srv.URL, "tok")
	content := strings.Repeat("x", 256<<10)
	file := File{Name: "grand.pdf", Size: int64(len(content)), Content: strings.NewReader(content)}

	var steps []int
	err := tr.Upload(context.Background(), "/api/cases/c1/evidence", file, func(pct int) {
		steps = append(steps, pct)
	}, nil)
	require.NoError(t, err)

	require.NotEmpty(t, steps)
	assert.True(t, sort.IntsAreSorted(steps), "progress must never move backwards: %v", steps)
	assert.Equal(t, 100, steps[len(steps)-1])
	for _, pct := range steps {
		assert.GreaterOrEqual(t, pct, 0)
		assert.LessOrEqual(t, pct, 100)
	}
}

func TestUploadServerErrorMapsToAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"detail":"fichier trop volumineux"}`))
	}))
	defer srv.Close()

	tr := newTestTransport(srv.URL, "tok")
	file := File{Name: "gros.pdf", Size: 4, Content: strings.NewReader("data")}

	err := tr.Upload(context.Background(), "/api/cases/c1/evidence", file, nil, nil)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, apiErr.StatusCode)
	assert.Equal(t, "fichier trop volumineux", apiErr.Message)
}
