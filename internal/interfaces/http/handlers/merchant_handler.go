package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"residual-hub.backend/internal/domain/repositories"
	"residual-hub.backend/internal/interfaces/http/response"
	"residual-hub.backend/pkg/utils"
)

// MerchantHandler handles merchant master-data endpoints
type MerchantHandler struct {
	merchantRepo repositories.MerchantRepository
}

// NewMerchantHandler creates a new merchant handler
func NewMerchantHandler(merchantRepo repositories.MerchantRepository) *MerchantHandler {
	return &MerchantHandler{merchantRepo: merchantRepo}
}

// List returns merchants with pagination
// GET /api/v1/merchants?page=&limit=
func (h *MerchantHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	pagination := utils.GetPaginationParams(page, limit)

	merchants, total, err := h.merchantRepo.List(c.Request.Context(), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"merchants":  merchants,
		"pagination": utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// Get returns one merchant by its MID
// GET /api/v1/merchants/:merchantId
func (h *MerchantHandler) Get(c *gin.Context) {
	merchant, err := h.merchantRepo.GetByMerchantID(c.Request.Context(), c.Param("merchantId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, merchant)
}
