package handler

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"royalty-core/internal/handler/response"
	"royalty-core/internal/service"
	"royalty-core/pkg/errno"
	"royalty-core/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EarningsHandler struct {
	earnings  *service.EarningsService
	analytics *service.AnalyticsService
	maxBytes  int64
}

func NewEarningsHandler(earnings *service.EarningsService, analytics *service.AnalyticsService, maxSizeMB int) *EarningsHandler {
	return &EarningsHandler{
		earnings:  earnings,
		analytics: analytics,
		maxBytes:  int64(maxSizeMB) * 1024 * 1024,
	}
}

// Upload godoc
// @Summary Upload an earnings report
// @Description Ingest a DSP earnings CSV and reconcile royalty ledgers
// @Tags earnings
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Earnings CSV"
// @Success 200 {object} response.Response
// @Router /api/v1/earnings/upload [post]
func (h *EarningsHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		response.Error(c, errno.ErrFileType)
		return
	}
	if fileHeader.Size > h.maxBytes {
		response.Error(c, errno.ErrFileTooLarge)
		return
	}
	if fileHeader.Size == 0 {
		response.Error(c, errno.ErrEmptyFile)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, errno.InternalServerError)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, errno.InternalServerError)
		return
	}

	uploaderID := c.GetUint64("admin_id")
	summary, err := h.earnings.IngestUpload(c.Request.Context(), fileHeader.Filename, uploaderID, data)
	if err != nil {
		logger.Error("earnings upload failed",
			zap.String("filename", fileHeader.Filename), zap.Error(err))
		response.Error(c, err)
		return
	}

	response.Success(c, summary)
}

// List godoc
// @Summary List ingested earnings rows
// @Tags earnings
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Rows per page"
// @Success 200 {object} response.Response
// @Router /api/v1/earnings [get]
func (h *EarningsHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	rows, total, err := h.earnings.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, rows, total, page, pageSize)
}

// Analytics godoc
// @Summary Earnings totals by user, DSP and territory
// @Tags earnings
// @Produce json
// @Param top query int false "Bucket limit per grouping"
// @Success 200 {object} response.Response
// @Router /api/v1/earnings/analytics [get]
func (h *EarningsHandler) Analytics(c *gin.Context) {
	topN, _ := strconv.Atoi(c.DefaultQuery("top", "10"))
	out, err := h.analytics.Totals(c.Request.Context(), topN)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

// DashboardSummary godoc
// @Summary Back-office landing page counters
// @Tags dashboard
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/dashboard/summary [get]
func (h *EarningsHandler) DashboardSummary(c *gin.Context) {
	out, err := h.analytics.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

// pagination reads page/page_size query params with sane fallbacks.
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}
	return page, pageSize
}
