// Package model defines data structures exchanged with the analysis backend.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// CaseStatus is the processing status of a case.
type CaseStatus string

const (
	CaseStatusNew        CaseStatus = "new"
	CaseStatusProcessing CaseStatus = "processing"
	CaseStatusAnalyzed   CaseStatus = "analyzed"
	CaseStatusError      CaseStatus = "error"
)

// legacyStatus maps the status vocabulary of earlier backend iterations onto the
// canonical enum. Accepted on decode only, never emitted.
var legacyStatus = map[string]CaseStatus{
	"nouveau":  CaseStatusNew,
	"en_cours": CaseStatusProcessing,
	"analyse":  CaseStatusAnalyzed,
	"termine":  CaseStatusAnalyzed,
	"erreur":   CaseStatusError,
}

// UnmarshalJSON decodes a case status, translating legacy values.
func (s *CaseStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch CaseStatus(raw) {
	case CaseStatusNew, CaseStatusProcessing, CaseStatusAnalyzed, CaseStatusError:
		*s = CaseStatus(raw)
		return nil
	}
	if mapped, ok := legacyStatus[raw]; ok {
		*s = mapped
		return nil
	}
	return fmt.Errorf("unknown case status %q", raw)
}

// CaseType is the legal category of a case.
type CaseType string

const (
	CaseTypeEmployment CaseType = "travail"
	CaseTypeFamily     CaseType = "famille"
	CaseTypeRealEstate CaseType = "immobilier"
	CaseTypeCommercial CaseType = "commercial"
	CaseTypeCriminal   CaseType = "penal"
	CaseTypeOther      CaseType = "autre"
)

// Case represents one client matter. Owned by the backend; the client holds a
// read-through cached copy.
type Case struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	ClientName    string     `json:"client_name"`
	CaseType      CaseType   `json:"case_type"`
	Status        CaseStatus `json:"status"`
	EvidenceCount int        `json:"evidence_count"`
	Synthesis     *Synthesis `json:"synthesis,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateCaseRequest is the request to create a new case.
type CreateCaseRequest struct {
	Title      string   `json:"title"`
	ClientName string   `json:"client_name"`
	CaseType   CaseType `json:"case_type"`
}

// UpdateCaseRequest is the request to update a case. Zero-value fields are left
// unchanged by the backend.
type UpdateCaseRequest struct {
	Title      string   `json:"title,omitempty"`
	ClientName string   `json:"client_name,omitempty"`
	CaseType   CaseType `json:"case_type,omitempty"`
}

// ListCasesResponse is the response for listing cases.
type ListCasesResponse struct {
	Cases []Case `json:"cases"`
	Total int    `json:"total"`
}
