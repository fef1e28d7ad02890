package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salescrm/internal/handlers"
	"salescrm/internal/metrics"
	"salescrm/internal/repositories"
)

func RegisterRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	oppHandler *handlers.OpportunityHandler,
	rfpHandler *handlers.RFPHandler,
	sowHandler *handlers.SOWHandler,
	collectionHandler *handlers.CollectionHandler,
	userRepo *repositories.UserRepository,
) {
	api := router.Group("/api/v1")

	authRoutes := NewAuthRoutes(authHandler)
	authRoutes.RegisterRoutes(api)

	oppRoutes := NewOpportunityRoutes(oppHandler, rfpHandler, sowHandler)
	oppRoutes.RegisterRoutes(api)

	collectionRoutes := NewCollectionRoutes(collectionHandler, userRepo)
	collectionRoutes.RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	router.GET("/metrics", metrics.Handler())
}
