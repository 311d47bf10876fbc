package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"residual-hub.backend/internal/domain/repositories"
	"residual-hub.backend/internal/interfaces/http/response"
	"residual-hub.backend/internal/usecases"
	"residual-hub.backend/pkg/metrics"
)

// AssignmentHandler handles assignment resolution endpoints
type AssignmentHandler struct {
	assignmentUsecase *usecases.AssignmentUsecase
	assignmentRepo    repositories.AssignmentRepository
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentUsecase *usecases.AssignmentUsecase, assignmentRepo repositories.AssignmentRepository) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentUsecase: assignmentUsecase,
		assignmentRepo:    assignmentRepo,
	}
}

// ResolveRequest triggers assignment resolution for one month
type ResolveRequest struct {
	Month      string `json:"month" binding:"required"`
	MerchantID string `json:"merchantId"`
}

// Resolve resolves assignments for a month
// POST /api/v1/assignments/resolve
func (h *AssignmentHandler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	upserts, err := h.assignmentUsecase.ResolveMonth(c.Request.Context(), req.Month, req.MerchantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.AssignmentsResolved.Add(float64(len(upserts)))

	response.Success(c, http.StatusOK, gin.H{
		"month":   req.Month,
		"count":   len(upserts),
		"upserts": upserts,
	})
}

// List returns assignments for a month, optionally for one merchant
// GET /api/v1/assignments?month=&merchantId=
func (h *AssignmentHandler) List(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "month query parameter is required")
		return
	}

	merchantID := c.Query("merchantId")

	var err error
	var assignments interface{}
	if merchantID != "" {
		assignments, err = h.assignmentRepo.ListByMerchantMonth(c.Request.Context(), merchantID, month)
	} else {
		assignments, err = h.assignmentRepo.ListByMonth(c.Request.Context(), month)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assignments": assignments})
}
