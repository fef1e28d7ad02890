package routes

import (
	"github.com/gin-gonic/gin"

	"salescrm/internal/handlers"
	"salescrm/internal/middlewares"
	"salescrm/internal/repositories"
)

type CollectionRoutes struct {
	handler  *handlers.CollectionHandler
	userRepo *repositories.UserRepository
}

func NewCollectionRoutes(handler *handlers.CollectionHandler, userRepo *repositories.UserRepository) *CollectionRoutes {
	return &CollectionRoutes{handler: handler, userRepo: userRepo}
}

func (r *CollectionRoutes) RegisterRoutes(router *gin.RouterGroup) {
	collections := router.Group("/opportunity-collections")
	collections.Use(middlewares.Authenticate) // All collection routes require authentication
	{
		// Schema management; init is destructive enough to gate on admin.
		collections.POST("/init", middlewares.RequireAdmin(r.userRepo), r.handler.InitCollections)
		collections.GET("/validate", r.handler.ValidateCollections)

		collections.GET("/opportunities", r.handler.ListOpportunities)
		collections.POST("/opportunities", r.handler.CreateOpportunity)
		collections.PUT("/opportunities/:opportunity_id", r.handler.UpdateOpportunity)

		collections.GET("/rfp-details", r.handler.ListRFPDetails)
		collections.POST("/rfp-details", r.handler.CreateRFPDetails)

		collections.GET("/rfp-documents", r.handler.ListRFPDocuments)
		collections.POST("/rfp-documents", r.handler.CreateRFPDocument)

		collections.GET("/sow-details", r.handler.ListSOWDetails)
		collections.POST("/sow-details", r.handler.CreateSOWDetails)

		collections.GET("/sow-documents", r.handler.ListSOWDocuments)
		collections.POST("/sow-documents", r.handler.CreateSOWDocument)

		collections.GET("/opportunity/:opportunity_id/complete", r.handler.GetCompleteOpportunity)
	}
}
