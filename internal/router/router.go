package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"billbook/internal/handler"
	"billbook/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health    *handler.HealthHandler
	Document  *handler.DocumentHandler
	Calculate *handler.CalculateHandler
	Reference *handler.ReferenceHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))
	r.Use(middleware.Metrics())

	// Health checks and metrics
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	// Stateless pricing
	calc := v1.Group("/calculate")
	calc.POST("/line", h.Calculate.Line)
	calc.POST("/document", h.Calculate.Document)

	// Reference data
	v1.GET("/reference", h.Reference.Get)
	v1.POST("/reference/invalidate", h.Reference.Invalidate)

	// Stored documents
	docs := v1.Group("/documents")
	docs.POST("", h.Document.Create)
	docs.GET("", h.Document.List)
	docs.GET("/:id", h.Document.GetByID)
	docs.DELETE("/:id", h.Document.Delete)
	docs.POST("/:id/commands", h.Document.ApplyCommands)
	docs.POST("/:id/validate", h.Document.Validate)
	docs.POST("/:id/submit", h.Document.Submit)
	docs.GET("/:id/export", h.Document.Export)

	return r
}
