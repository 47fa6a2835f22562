package model

// UploadState is the lifecycle state of one client-local upload task.
type UploadState string

const (
	UploadQueued    UploadState = "queued"
	UploadUploading UploadState = "uploading"
	UploadProcessed UploadState = "processed"
	UploadFailed    UploadState = "failed"
)

// UploadTask tracks one file's journey through a batch upload. Client-local
// and ephemeral; never persisted.
type UploadTask struct {
	ID         string      `json:"id"`
	Filename   string      `json:"filename"`
	SizeBytes  int64       `json:"size_bytes"`
	State      UploadState `json:"state"`
	Progress   int         `json:"progress"` // 0-100
	EvidenceID string      `json:"evidence_id,omitempty"`
	Reason     string      `json:"reason,omitempty"`
}
