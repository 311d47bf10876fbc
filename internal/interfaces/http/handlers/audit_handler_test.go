package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"residual-hub.backend/internal/domain/entities"
	"residual-hub.backend/pkg/utils"
)

func TestAuditRunCleanMonth(t *testing.T) {
	f := newPipelineFixture(t)
	f.uploadMonth(t, "clearent", "2025-03", cleanRows())
	w := f.postJSON(t, "/api/v1/assignments/resolve", gin.H{"month": "2025-03"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.postJSON(t, "/api/v1/audits/run", gin.H{"month": "2025-03"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "completed", body["status"])
	assert.Equal(t, float64(0), body["splitErrors"])
	assert.Equal(t, float64(0), body["missingAssignments"])
	assert.Equal(t, float64(0), body["unmatchedMids"])
	assert.Empty(t, f.issueRepo.issues)
}

func TestAuditRunMissingAssignments(t *testing.T) {
	f := newPipelineFixture(t)
	f.uploadMonth(t, "clearent", "2025-03", cleanRows())
	// No resolution ran: every merchant is missing assignments

	w := f.postJSON(t, "/api/v1/audits/run", gin.H{"month": "2025-03"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["missingAssignments"])
	assert.Len(t, f.issueRepo.issues, 2)
}

func TestAuditRunRepeatDoesNotDuplicateIssues(t *testing.T) {
	f := newPipelineFixture(t)
	f.uploadMonth(t, "clearent", "2025-03", cleanRows())

	for i := 0; i < 2; i++ {
		w := f.postJSON(t, "/api/v1/audits/run", gin.H{"month": "2025-03"})
		require.Equal(t, http.StatusOK, w.Code)
	}

	// Active issues refresh in place across runs
	assert.Len(t, f.issueRepo.issues, 2)
}

func TestAuditRunValidation(t *testing.T) {
	f := newPipelineFixture(t)

	w := f.postJSON(t, "/api/v1/audits/run", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.postJSON(t, "/api/v1/audits/run", gin.H{"month": "2025"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveAuditIssue(t *testing.T) {
	f := newPipelineFixture(t)
	f.uploadMonth(t, "clearent", "2025-03", cleanRows())
	w := f.postJSON(t, "/api/v1/audits/run", gin.H{"month": "2025-03"})
	require.Equal(t, http.StatusOK, w.Code)

	var issueID string
	for id := range f.issueRepo.issues {
		issueID = id.String()
		break
	}
	require.NotEmpty(t, issueID)

	w = f.put(t, "/api/v1/audit-issues/"+issueID+"/resolve")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "resolved", body["status"])

	// Resolving again is a no-op, not an error
	w = f.put(t, "/api/v1/audit-issues/"+issueID+"/resolve")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResolveAuditIssueErrors(t *testing.T) {
	f := newPipelineFixture(t)

	w := f.put(t, "/api/v1/audit-issues/not-a-uuid/resolve")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.put(t, "/api/v1/audit-issues/"+utils.GenerateUUIDv7().String()+"/resolve")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// A resolved issue is immutable history: when the anomaly recurs, the next
// run opens a fresh row instead of reopening it.
func TestAuditRecurrenceAfterResolutionGetsFreshIssue(t *testing.T) {
	f := newPipelineFixture(t)
	f.uploadMonth(t, "clearent", "2025-03", cleanRows()[:1])

	w := f.postJSON(t, "/api/v1/audits/run", gin.H{"month": "2025-03"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, f.issueRepo.issues, 1)

	var issueID string
	for id := range f.issueRepo.issues {
		issueID = id.String()
	}
	w = f.put(t, "/api/v1/audit-issues/"+issueID+"/resolve")
	require.Equal(t, http.StatusOK, w.Code)

	w = f.postJSON(t, "/api/v1/audits/run", gin.H{"month": "2025-03"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Len(t, f.issueRepo.issues, 2)
	resolved := 0
	for _, issue := range f.issueRepo.issues {
		if issue.Status == entities.IssueStatusResolved {
			resolved++
		}
	}
	assert.Equal(t, 1, resolved)
}

func TestListAuditIssues(t *testing.T) {
	f := newPipelineFixture(t)
	f.uploadMonth(t, "clearent", "2025-03", cleanRows())
	w := f.postJSON(t, "/api/v1/audits/run", gin.H{"month": "2025-03"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.get(t, "/api/v1/audit-issues?month=2025-03")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["issues"], 2)

	w = f.get(t, "/api/v1/audit-issues?month=2025-03&type=split_error")
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Empty(t, body["issues"])

	w = f.get(t, "/api/v1/audit-issues?status=open")
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Len(t, body["issues"], 2)
}
