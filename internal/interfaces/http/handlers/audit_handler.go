package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"residual-hub.backend/internal/domain/entities"
	"residual-hub.backend/internal/domain/repositories"
	"residual-hub.backend/internal/interfaces/http/response"
	"residual-hub.backend/internal/usecases"
	"residual-hub.backend/pkg/metrics"
	"residual-hub.backend/pkg/utils"
)

// AuditHandler handles reconciliation endpoints
type AuditHandler struct {
	auditUsecase *usecases.AuditUsecase
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditUsecase *usecases.AuditUsecase) *AuditHandler {
	return &AuditHandler{auditUsecase: auditUsecase}
}

// RunRequest triggers one audit run
type RunRequest struct {
	Month string `json:"month" binding:"required"`
}

// Run performs the reconciliation checks for a month
// POST /api/v1/audits/run
func (h *AuditHandler) Run(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	report, err := h.auditUsecase.RunAudit(c.Request.Context(), req.Month)
	if err != nil {
		if report != nil && report.Status == entities.AuditRunFailed {
			c.JSON(http.StatusInternalServerError, report)
			return
		}
		response.Error(c, err)
		return
	}

	metrics.RecordAuditRun(map[string]int{
		string(entities.IssueSplitError):        report.SplitErrors,
		string(entities.IssueMissingAssignment): report.MissingAssignments,
		string(entities.IssueUnmatchedMID):      report.UnmatchedMIDs,
	}, time.Since(start).Seconds())

	response.Success(c, http.StatusOK, report)
}

// ResolveIssue marks an audit issue resolved
// PUT /api/v1/audit-issues/:id/resolve
func (h *AuditHandler) ResolveIssue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid issue id")
		return
	}

	issue, err := h.auditUsecase.ResolveIssue(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, issue)
}

// ListIssues returns audit issues with optional filters
// GET /api/v1/audit-issues?month=&status=&type=&page=&limit=
func (h *AuditHandler) ListIssues(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	pagination := utils.GetPaginationParams(page, limit)

	filter := repositories.IssueFilter{
		Month:  c.Query("month"),
		Status: entities.IssueStatus(c.Query("status")),
		Type:   entities.IssueType(c.Query("type")),
	}

	issues, total, err := h.auditUsecase.ListIssues(c.Request.Context(), filter, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"issues":     issues,
		"pagination": utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}
