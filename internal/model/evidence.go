package model

import (
	"time"
)

// MediaKind is the media type of an uploaded evidence item.
type MediaKind string

const (
	MediaDocument MediaKind = "document"
	MediaAudio    MediaKind = "audio"
	MediaImage    MediaKind = "image"
	MediaEmail    MediaKind = "email"
	MediaText     MediaKind = "text"
)

// EvidenceItem is one uploaded artifact belonging to a case. Server-side
// processing fills in the extracted content; the client only observes the
// Processed transition.
type EvidenceItem struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"case_id"`
	Filename  string    `json:"filename"`
	MediaKind MediaKind `json:"media_kind"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	Processed bool      `json:"processed"`

	// Kind-specific extracted content, present once processed.
	ExtractedText string               `json:"extracted_text,omitempty"`
	Transcription *TranscriptionResult `json:"transcription,omitempty"`
	OCR           *OCRResult           `json:"ocr,omitempty"`
	Analysis      *EvidenceAnalysis    `json:"analysis,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TranscriptionResult is the transcript of an audio evidence item.
type TranscriptionResult struct {
	Text     string              `json:"text"`
	Segments []TranscriptSegment `json:"segments"`
	Speakers []SpeakerShare      `json:"speakers,omitempty"`
	Duration string              `json:"duration"`
}

// TranscriptSegment is one timed span of a transcript.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// SpeakerShare is a speaker's share of an audio recording.
type SpeakerShare struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// OCRResult is the OCR output for an image evidence item.
type OCRResult struct {
	Text             string            `json:"text"`
	Description      string            `json:"description"`
	DetectedElements []DetectedElement `json:"detected_elements"`
}

// DetectedElement is one labeled value the OCR pipeline found in an image.
type DetectedElement struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// EvidenceAnalysis is the per-item AI analysis produced by the backend.
type EvidenceAnalysis struct {
	Summary     string       `json:"summary"`
	KeyElements []KeyElement `json:"key_elements"`
	Dates       []DatedEvent `json:"dates"`
}

// KeyElement is one notable element extracted from an evidence item.
type KeyElement struct {
	Text string `json:"text"`
	Page string `json:"page,omitempty"`
	Type string `json:"type"` // strength | weakness | info
}

// DatedEvent pairs a date with the event it anchors.
type DatedEvent struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

// UploadResult is the backend acknowledgment of one evidence upload.
type UploadResult struct {
	EvidenceID string `json:"evidence_id"`
	Status     string `json:"status"`
	Filename   string `json:"filename"`
}

// ListEvidenceResponse is the response for listing a case's evidence.
type ListEvidenceResponse struct {
	Evidence []EvidenceItem `json:"evidence"`
}
