package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// File is one artifact to upload.
type File struct {
	Name     string
	MimeType string
	Size     int64
	Content  io.Reader
}

// ProgressFunc receives byte progress as a 0-100 percentage. It is invoked at
// least once with 100 on a fully sent body and never moves backwards.
type ProgressFunc func(percent int)

// Upload sends one file as a multipart request, reporting transfer progress.
// The multipart body is buffered first so progress reflects actual bytes on
// the wire, mirroring upload transfer events in a browser client.
func (t *Transport) Upload(ctx context.Context, path string, file File, onProgress ProgressFunc, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return &Error{Message: "failed to build multipart body: " + err.Error()}
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return &Error{Message: "failed to read file: " + err.Error()}
	}
	if err := mw.WriteField("name", file.Name); err != nil {
		return &Error{Message: "failed to build multipart body: " + err.Error()}
	}
	if err := mw.Close(); err != nil {
		return &Error{Message: "failed to build multipart body: " + err.Error()}
	}

	total := int64(buf.Len())
	body := &progressReader{r: &buf, total: total, onProgress: onProgress}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, body)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.ContentLength = total

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

// progressReader counts bytes handed to the HTTP client and reports whole
// percentage steps.
type progressReader struct {
	r          io.Reader
	total      int64
	sent       int64
	lastPct    int
	onProgress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.sent += int64(n)

	if p.onProgress != nil && p.total > 0 {
		pct := int(p.sent * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct > p.lastPct {
			p.lastPct = pct
			p.onProgress(pct)
		}
	}
	return n, err
}
