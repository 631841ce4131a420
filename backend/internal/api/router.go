package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"name-address-db/backend/internal/records"
)

// RouterConfig holds the settings the router needs
type RouterConfig struct {
	Production      bool
	CORSAllowOrigin string
}

// NewRouter builds the gin engine serving both API endpoints
func NewRouter(cfg RouterConfig, service *records.Service, log *zap.Logger) *gin.Engine {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	h := NewHandler(service, log)

	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors(cfg.CORSAllowOrigin))

	// Health check
	router.GET("/health", h.Health)

	// API routes
	api := router.Group("/api")
	{
		api.POST("/add", h.Add)
		api.GET("/search", h.Search)
	}

	return router
}
