package handler

import (
	"strconv"

	"royalty-core/internal/handler/request"
	"royalty-core/internal/handler/response"
	"royalty-core/internal/service"
	"royalty-core/pkg/errno"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// List godoc
// @Summary List payment requests
// @Tags payments
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Rows per page"
// @Success 200 {object} response.Response
// @Router /api/v1/payment-requests [get]
func (h *PaymentHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	rows, total, err := h.payments.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, rows, total, page, pageSize)
}

// SetStatus godoc
// @Summary Transition a payment request
// @Description Approving a pending request debits the user's wallet
// @Tags payments
// @Accept json
// @Produce json
// @Param id path int true "Payment request ID"
// @Param request body request.SetPaymentStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Router /api/v1/payment-requests/{id}/status [post]
func (h *PaymentHandler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	var req request.SetPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	if err := h.payments.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": id, "status": req.Status})
}

// SetStatusBulk godoc
// @Summary Transition many payment requests at once
// @Description Each request is processed independently; failures do not sink the rest
// @Tags payments
// @Accept json
// @Produce json
// @Param request body request.BulkPaymentStatusRequest true "IDs and new status"
// @Success 200 {object} response.Response
// @Router /api/v1/payment-requests/bulk-status [post]
func (h *PaymentHandler) SetStatusBulk(c *gin.Context) {
	var req request.BulkPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	summary, err := h.payments.SetStatusBulk(c.Request.Context(), req.IDs, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}
