package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseStatusDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want CaseStatus
	}{
		{"canonical new", `"new"`, CaseStatusNew},
		{"canonical processing", `"processing"`, CaseStatusProcessing},
		{"canonical analyzed", `"analyzed"`, CaseStatusAnalyzed},
		{"canonical error", `"error"`, CaseStatusError},
		{"legacy nouveau", `"nouveau"`, CaseStatusNew},
		{"legacy en_cours", `"en_cours"`, CaseStatusProcessing},
		{"legacy analyse", `"analyse"`, CaseStatusAnalyzed},
		{"legacy termine", `"termine"`, CaseStatusAnalyzed},
		{"legacy erreur", `"erreur"`, CaseStatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s CaseStatus
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &s))
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestCaseStatusDecodeUnknown(t *testing.T) {
	var s CaseStatus
	err := json.Unmarshal([]byte(`"pending"`), &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pending")
}

func TestCaseDecodeWithLegacyStatus(t *testing.T) {
	payload := `{
		"id": "c-1",
		"title": "Dupont c. Martin",
		"client_name": "M. Dupont",
		"case_type": "travail",
		"status": "termine",
		"evidence_count": 3,
		"created_at": "2025-04-01T10:00:00Z",
		"updated_at": "2025-04-02T09:30:00Z"
	}`

	var c Case
	require.NoError(t, json.Unmarshal([]byte(payload), &c))
	assert.Equal(t, CaseStatusAnalyzed, c.Status)
	assert.Equal(t, CaseTypeEmployment, c.CaseType)
	assert.Equal(t, 3, c.EvidenceCount)
}

func TestAnalysisStatusTerminal(t *testing.T) {
	assert.False(t, AnalysisPending.Terminal())
	assert.False(t, AnalysisProcessing.Terminal())
	assert.True(t, AnalysisCompleted.Terminal())
	assert.True(t, AnalysisError.Terminal())
}
