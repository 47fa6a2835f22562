package model

// AnalysisStatus is the backend-reported state of an analysis run.
type AnalysisStatus string

const (
	AnalysisPending    AnalysisStatus = "pending"
	AnalysisProcessing AnalysisStatus = "processing"
	AnalysisCompleted  AnalysisStatus = "completed"
	AnalysisError      AnalysisStatus = "error"
)

// Terminal reports whether the status ends the polling loop.
func (s AnalysisStatus) Terminal() bool {
	return s == AnalysisCompleted || s == AnalysisError
}

// StartAnalysisResponse is the backend acknowledgment of an analysis start.
type StartAnalysisResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AnalysisStatusResponse is one status poll result.
type AnalysisStatusResponse struct {
	Status             AnalysisStatus `json:"status"`
	Progress           int            `json:"progress"`
	CurrentStep        string         `json:"current_step"`
	EstimatedRemaining string         `json:"estimated_remaining,omitempty"`
	Error              string         `json:"error,omitempty"`
}
