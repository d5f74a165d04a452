package innings

import (
	mw "github.com/DhavalSuthar-24/cricketclub/internal/middleware"
	"github.com/DhavalSuthar-24/cricketclub/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
)

// InningsRoutes sets up the scoring routes.
func InningsRoutes(router *gin.RouterGroup, service *Service, jwtSecret string) {
	inningsController := NewInningsController(service)

	innings := router.Group("/innings")
	innings.Use(mw.AuthMiddleware(jwtSecret))
	{
		innings.GET("/:id/state", inningsController.GetState)
	}

	scorer := innings.Group("")
	scorer.Use(rmiddleware.ScorerOrAdminMiddleware())
	{
		scorer.POST("", inningsController.StartInnings)
		scorer.POST("/:id/actions", inningsController.ApplyAction)
		scorer.POST("/:id/reconcile", inningsController.Reconcile)
		scorer.POST("/:id/end", inningsController.EndInnings)
	}
}
