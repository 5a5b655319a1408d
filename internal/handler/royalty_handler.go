package handler

import (
	"strconv"

	"royalty-core/internal/handler/request"
	"royalty-core/internal/handler/response"
	"royalty-core/internal/service"
	"royalty-core/pkg/errno"

	"github.com/gin-gonic/gin"
)

type RoyaltyHandler struct {
	royalties *service.RoyaltyService
}

func NewRoyaltyHandler(royalties *service.RoyaltyService) *RoyaltyHandler {
	return &RoyaltyHandler{royalties: royalties}
}

// List godoc
// @Summary List royalty ledger entries
// @Tags royalties
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Rows per page"
// @Success 200 {object} response.Response
// @Router /api/v1/royalties [get]
func (h *RoyaltyHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	rows, total, err := h.royalties.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, rows, total, page, pageSize)
}

// Create godoc
// @Summary Create a manual ledger entry
// @Description Closing balance is derived server-side, never accepted from the caller
// @Tags royalties
// @Accept json
// @Produce json
// @Param request body request.CreateRoyaltyRequest true "Ledger entry"
// @Success 200 {object} response.Response
// @Router /api/v1/royalties [post]
func (h *RoyaltyHandler) Create(c *gin.Context) {
	var req request.CreateRoyaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	entry, err := h.royalties.Create(c.Request.Context(), service.CreateInput{
		UserID:               req.UserID,
		ReportingPeriod:      req.ReportingPeriod,
		OpeningBalance:       req.OpeningBalance,
		Earnings:             req.Earnings,
		Adjustments:          req.Adjustments,
		SplitShareDeductions: req.SplitShareDeductions,
		Withdrawals:          req.Withdrawals,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entry)
}

// SetStatus godoc
// @Summary Set the payment status for a ledger entry
// @Description Matches or creates the entry's payment request, then transitions it
// @Tags royalties
// @Accept json
// @Produce json
// @Param id path int true "Ledger entry ID"
// @Param request body request.SetRoyaltyStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Router /api/v1/royalties/{id}/status [post]
func (h *RoyaltyHandler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	var req request.SetRoyaltyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	if err := h.royalties.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": id, "status": req.Status})
}

// Delete godoc
// @Summary Delete a ledger entry
// @Tags royalties
// @Produce json
// @Param id path int true "Ledger entry ID"
// @Success 200 {object} response.Response
// @Router /api/v1/royalties/{id} [delete]
func (h *RoyaltyHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	if err := h.royalties.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}
