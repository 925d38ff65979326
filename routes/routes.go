package routes

import (
	"net/http"
	"time"

	"inventario-backend/config"
	"inventario-backend/handlers"
	"inventario-backend/middleware"
	"inventario-backend/progress"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, hub *progress.Hub) {
	// Initialize handlers
	productHandler := &handlers.ProductHandler{DB: db}
	importHandler := &handlers.ImportHandler{
		DB:           db,
		Hub:          hub,
		BatchSize:    config.ImportBatchSize(),
		FailureLimit: config.ImportFailureLimit(),
	}
	progressHandler := &handlers.ProgressHandler{Hub: hub}
	healthHandler := &handlers.HealthHandler{DB: db}

	// API info
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"mensaje": "API de Inventario",
			"version": "1.0",
			"docs":    "/api/productos",
		})
	})

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	{
		// Product CRUD
		api.GET("/productos", productHandler.GetProducts)
		api.GET("/productos/:id", productHandler.GetProduct)
		api.POST("/productos", productHandler.CreateProduct)
		api.PUT("/productos/:id", productHandler.UpdateProduct)
		api.DELETE("/productos/:id", productHandler.DeleteProduct)

		// Excel import routes (rate limited, imports hold a transaction)
		importLimiter := middleware.NewRateLimiter(5, time.Minute)
		api.POST("/productos/validar-excel", importLimiter.Middleware(), importHandler.ValidateExcel)
		api.POST("/productos/cargar-excel", importLimiter.Middleware(), importHandler.ImportExcel)
	}

	// WebSocket progress channel
	r.GET("/ws/productos/progreso", progressHandler.Progreso)
}
