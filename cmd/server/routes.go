package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"residual-hub.backend/internal/interfaces/http/handlers"
	"residual-hub.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	uploadHandler     *handlers.UploadHandler
	assignmentHandler *handlers.AssignmentHandler
	auditHandler      *handlers.AuditHandler
	reportHandler     *handlers.ReportHandler
	merchantHandler   *handlers.MerchantHandler
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Intake routes
		uploads := v1.Group("/uploads")
		{
			uploads.POST("", middleware.IdempotencyMiddleware(), d.uploadHandler.Upload)
		}

		// Assignment routes
		assignments := v1.Group("/assignments")
		{
			assignments.POST("/resolve", d.assignmentHandler.Resolve)
			assignments.GET("", d.assignmentHandler.List)
		}

		// Reconciliation routes
		audits := v1.Group("/audits")
		{
			audits.POST("/run", d.auditHandler.Run)
		}
		auditIssues := v1.Group("/audit-issues")
		{
			auditIssues.GET("", d.auditHandler.ListIssues)
			auditIssues.PUT("/:id/resolve", d.auditHandler.ResolveIssue)
		}

		// Report routes
		reports := v1.Group("/reports")
		{
			reports.GET("/monthly", d.reportHandler.Monthly)
		}

		// Merchant master data routes
		merchants := v1.Group("/merchants")
		{
			merchants.GET("", d.merchantHandler.List)
			merchants.GET("/:merchantId", d.merchantHandler.Get)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Idempotency-Key, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "residual-hub-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
