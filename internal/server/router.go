package server

import (
	"royalty-core/internal/handler"
	"royalty-core/internal/service"
	"royalty-core/pkg/monitor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Admin    *handler.AdminHandler
	Earnings *handler.EarningsHandler
	Payments *handler.PaymentHandler
	Royalty  *handler.RoyaltyHandler
}

// NewHTTPRouter builds the Gin engine: open system routes, then the
// session-guarded /api/v1 group.
func NewHTTPRouter(h Handlers, admins *service.AdminService) *gin.Engine {
	monitor.Init()

	r := gin.Default()
	r.Use(monitor.PrometheusMiddleware())

	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		// Login is the only unguarded API route.
		api.POST("/auth/login", h.Admin.Login)

		authed := api.Group("")
		authed.Use(SessionAuth(admins))
		{
			authed.POST("/auth/logout", h.Admin.Logout)

			authed.POST("/earnings/upload", h.Earnings.Upload)
			authed.GET("/earnings", h.Earnings.List)
			authed.GET("/earnings/analytics", h.Earnings.Analytics)
			authed.GET("/dashboard/summary", h.Earnings.DashboardSummary)

			authed.GET("/payment-requests", h.Payments.List)
			authed.POST("/payment-requests/:id/status", h.Payments.SetStatus)
			authed.POST("/payment-requests/bulk-status", h.Payments.SetStatusBulk)

			authed.GET("/royalties", h.Royalty.List)
			authed.POST("/royalties", h.Royalty.Create)
			authed.POST("/royalties/:id/status", h.Royalty.SetStatus)
			authed.DELETE("/royalties/:id", h.Royalty.Delete)
		}
	}

	return r
}
