package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/DhavalSuthar-24/cricketclub/config"
	"github.com/DhavalSuthar-24/cricketclub/internal/innings"
	"github.com/DhavalSuthar-24/cricketclub/internal/match"
)

func SetupRoutes(cfg *config.Config, matches *match.Service, scoring *innings.Service) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware(cfg.App.FrontendURL))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	match.MatchRoutes(api, matches, cfg.JWT.AccessTokenSecret)
	innings.InningsRoutes(api, scoring, cfg.JWT.AccessTokenSecret)

	return r
}

// corsMiddleware allows the scoring frontend, or every origin when none is configured.
func corsMiddleware(frontendURL string) gin.HandlerFunc {
	if frontendURL == "" {
		return cors.Default()
	}
	return cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
