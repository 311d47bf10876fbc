package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"residual-hub.backend/internal/domain/entities"
	"residual-hub.backend/internal/interfaces/http/response"
	"residual-hub.backend/internal/usecases"
	"residual-hub.backend/pkg/metrics"
	"residual-hub.backend/pkg/tabular"
)

// UploadHandler handles processor export intake
type UploadHandler struct {
	uploadUsecase *usecases.UploadUsecase
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadUsecase *usecases.UploadUsecase) *UploadHandler {
	return &UploadHandler{uploadUsecase: uploadUsecase}
}

// UploadRequest is the JSON intake body
type UploadRequest struct {
	ProcessorName string            `json:"processorName" binding:"required"`
	Month         string            `json:"month" binding:"required"`
	Rows          []entities.RawRow `json:"rows" binding:"required"`
	Force         bool              `json:"force"`
}

// Upload handles a processor export upload
// POST /api/v1/uploads
//
// Accepts either a JSON body with pre-parsed rows or a multipart form with
// a CSV/XLSX file plus processorName, month and force fields.
func (h *UploadHandler) Upload(c *gin.Context) {
	input, err := h.bindInput(c)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.uploadUsecase.Upload(c.Request.Context(), input)
	if err != nil {
		metrics.RecordUpload(input.ProcessorName, "failed", 0)
		response.Error(c, err)
		return
	}

	outcome := "accepted"
	if !result.Accepted {
		outcome = "rejected"
	}
	metrics.RecordUpload(input.ProcessorName, outcome, len(result.NormalizationErrors))

	response.Success(c, http.StatusOK, result)
}

func (h *UploadHandler) bindInput(c *gin.Context) (usecases.UploadInput, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		return h.bindMultipart(c)
	}

	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return usecases.UploadInput{}, err
	}
	return usecases.UploadInput{
		ProcessorName: req.ProcessorName,
		Month:         req.Month,
		Rows:          req.Rows,
		Force:         req.Force,
	}, nil
}

func (h *UploadHandler) bindMultipart(c *gin.Context) (usecases.UploadInput, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return usecases.UploadInput{}, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return usecases.UploadInput{}, err
	}
	defer file.Close()

	rows, err := tabular.Parse(file, fileHeader.Filename)
	if err != nil {
		return usecases.UploadInput{}, err
	}

	return usecases.UploadInput{
		ProcessorName: c.PostForm("processorName"),
		Month:         c.PostForm("month"),
		Rows:          rows,
		Force:         c.PostForm("force") == "true",
	}, nil
}
