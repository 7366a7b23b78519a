package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/mediadb-backend/internal/config"
	"github.com/ignatzorin/mediadb-backend/internal/http/handlers"
	"github.com/ignatzorin/mediadb-backend/internal/http/middleware"
	"github.com/ignatzorin/mediadb-backend/internal/storage"
	"github.com/ignatzorin/mediadb-backend/internal/validation"
)

// Handlers набор хэндлеров, которые монтирует роутер. SeedHandler и WSHandler опциональны.
type Handlers struct {
	Assets     *handlers.AssetHandler
	Categories *handlers.CategoryHandler
	Health     *handlers.HealthHandler
	WS         *handlers.WSHandler
	Seed       *handlers.SeedHandler
}

func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validation.Init()

	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	if cfg.StorageDriver == config.StorageDriverLocal {
		r.StaticFS("/media", storage.NewMediaFS(cfg.MediaStoragePath))
	}

	api := r.Group("/api")

	if h.Seed != nil && cfg.IsDevelopment() {
		api.POST("/seed", h.Seed.Seed)
	}

	uploadRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)

	assets := api.Group("/assets")
	{
		assets.GET("", h.Assets.List)
		assets.POST("", uploadRateLimit, h.Assets.Create)
		assets.PATCH("/:id", h.Assets.Update)
		assets.DELETE("/:id", h.Assets.Archive)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", h.Categories.List)
		categories.POST("", h.Categories.Create)
	}

	if h.WS != nil {
		api.GET("/ws", h.WS.Handle)
	}

	return r
}
