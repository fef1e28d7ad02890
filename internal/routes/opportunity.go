package routes

import (
	"github.com/gin-gonic/gin"

	"salescrm/internal/handlers"
	"salescrm/internal/middlewares"
)

type OpportunityRoutes struct {
	oppHandler *handlers.OpportunityHandler
	rfpHandler *handlers.RFPHandler
	sowHandler *handlers.SOWHandler
}

func NewOpportunityRoutes(
	oppHandler *handlers.OpportunityHandler,
	rfpHandler *handlers.RFPHandler,
	sowHandler *handlers.SOWHandler,
) *OpportunityRoutes {
	return &OpportunityRoutes{
		oppHandler: oppHandler,
		rfpHandler: rfpHandler,
		sowHandler: sowHandler,
	}
}

func (r *OpportunityRoutes) RegisterRoutes(router *gin.RouterGroup) {
	opportunities := router.Group("/opportunities")
	opportunities.Use(middlewares.Authenticate) // All opportunity routes require authentication
	{
		opportunities.GET("", r.oppHandler.ListOpportunities)
		opportunities.POST("", r.oppHandler.CreateOpportunity)
		opportunities.GET("/:id", r.oppHandler.GetOpportunity)
		opportunities.PUT("/:id", r.oppHandler.UpdateOpportunity)
		opportunities.DELETE("/:id", r.oppHandler.DeleteOpportunity)

		opportunities.GET("/:id/rfp-details", r.rfpHandler.GetRFPDetails)
		opportunities.POST("/:id/rfp-details", r.rfpHandler.CreateRFPDetails)
		opportunities.PUT("/:id/rfp-details", r.rfpHandler.UpdateRFPDetails)

		opportunities.GET("/:id/rfp-documents", r.rfpHandler.ListRFPDocuments)
		opportunities.POST("/:id/rfp-documents", r.rfpHandler.UploadRFPDocument)
		opportunities.DELETE("/:id/rfp-documents/:document_id", r.rfpHandler.DeleteRFPDocument)

		opportunities.GET("/:id/sow-details", r.sowHandler.GetSOWDetails)
		opportunities.POST("/:id/sow-details", r.sowHandler.CreateSOWDetails)
		opportunities.PUT("/:id/sow-details", r.sowHandler.UpdateSOWDetails)

		opportunities.GET("/:id/sow-documents", r.sowHandler.ListSOWDocuments)
		opportunities.POST("/:id/sow-documents", r.sowHandler.UploadSOWDocument)
		opportunities.DELETE("/:id/sow-documents/:document_id", r.sowHandler.DeleteSOWDocument)
	}
}
