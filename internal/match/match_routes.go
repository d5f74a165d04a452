package match

import (
	mw "github.com/DhavalSuthar-24/cricketclub/internal/middleware"
	"github.com/DhavalSuthar-24/cricketclub/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
)

// MatchRoutes sets up all match-related routes.
func MatchRoutes(router *gin.RouterGroup, service *Service, jwtSecret string) {
	matchController := NewMatchController(service)

	matches := router.Group("/matches")
	matches.Use(mw.AuthMiddleware(jwtSecret)) // Require authentication
	{
		matches.GET("/live", matchController.GetLiveMatches)
		matches.GET("/:id/status", matchController.GetStatus)
	}

	scorer := matches.Group("")
	scorer.Use(rmiddleware.ScorerOrAdminMiddleware())
	{
		scorer.POST("", matchController.CreateMatch)
		scorer.POST("/setup", matchController.UpsertSetup)
		scorer.POST("/:id/start", matchController.StartMatch)
		scorer.POST("/:id/complete", matchController.CompleteMatch)
		scorer.PUT("/:id/result", matchController.UpdateResultText)
	}
}
