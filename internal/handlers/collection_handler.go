package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salescrm/internal/responses"
	"salescrm/internal/services"
	"salescrm/internal/utils"
)

// CollectionHandler exposes the flat, collection-per-endpoint surface
// under /opportunity-collections. It reuses the same services as the
// nested opportunity routes, so lifecycle side effects fire regardless
// of which surface a client writes through.
type CollectionHandler struct {
	schemaService *services.SchemaService
	oppService    *services.OpportunityService
	rfpService    *services.RFPService
	sowService    *services.SOWService
}

func NewCollectionHandler(
	schemaService *services.SchemaService,
	oppService *services.OpportunityService,
	rfpService *services.RFPService,
	sowService *services.SOWService,
) *CollectionHandler {
	return &CollectionHandler{
		schemaService: schemaService,
		oppService:    oppService,
		rfpService:    rfpService,
		sowService:    sowService,
	}
}

// InitCollections handles POST /api/v1/opportunity-collections/init
func (h *CollectionHandler) InitCollections(c *gin.Context) {
	if err := h.schemaService.Init(); err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to initialize collections")
		return
	}
	responses.Success(c, http.StatusCreated, nil, "Collections initialized successfully")
}

// ValidateCollections handles GET /api/v1/opportunity-collections/validate
func (h *CollectionHandler) ValidateCollections(c *gin.Context) {
	valid, err := h.schemaService.Validate()
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to validate collections")
		return
	}
	responses.Success(c, http.StatusOK, gin.H{"valid": valid}, "Collections validated")
}

// ListOpportunities handles GET /api/v1/opportunity-collections/opportunities
func (h *CollectionHandler) ListOpportunities(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	opportunities, err := h.oppService.List(c.Query("status"), c.Query("pipeline_status"), skip, limit)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve opportunities")
		return
	}

	responses.Success(c, http.StatusOK, opportunities, "Opportunities retrieved successfully")
}

// CreateOpportunity handles POST /api/v1/opportunity-collections/opportunities
func (h *CollectionHandler) CreateOpportunity(c *gin.Context) {
	var req services.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	opp, err := h.oppService.Create(req, currentUserEmail(c))
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to create opportunity")
		return
	}

	responses.Success(c, http.StatusCreated, opp, "Opportunity created successfully")
}

// UpdateOpportunity handles PUT /api/v1/opportunity-collections/opportunities/:opportunity_id
func (h *CollectionHandler) UpdateOpportunity(c *gin.Context) {
	var req services.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	opp, err := h.oppService.Update(c.Param("opportunity_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoFields):
			responses.Fail(c, http.StatusBadRequest, err, "No fields to update")
		case errors.Is(err, services.ErrNotFound):
			responses.Fail(c, http.StatusNotFound, err, "Opportunity not found")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to update opportunity")
		}
		return
	}

	responses.Success(c, http.StatusOK, opp, "Opportunity updated successfully")
}

// GetCompleteOpportunity handles
// GET /api/v1/opportunity-collections/opportunity/:opportunity_id/complete
func (h *CollectionHandler) GetCompleteOpportunity(c *gin.Context) {
	view, err := h.oppService.GetView(c.Param("opportunity_id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "Opportunity not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve opportunity")
		return
	}

	responses.Success(c, http.StatusOK, view, "Opportunity retrieved successfully")
}

// ListRFPDetails handles GET /api/v1/opportunity-collections/rfp-details
func (h *CollectionHandler) ListRFPDetails(c *gin.Context) {
	details, err := h.rfpService.ListDetails(c.Query("opportunity_id"))
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve RFP details")
		return
	}

	responses.Success(c, http.StatusOK, details, "RFP details retrieved successfully")
}

type createRFPDetailsCollectionRequest struct {
	OpportunityID string `json:"opportunity_id" binding:"required"`
	services.CreateRFPDetailsRequest
}

// CreateRFPDetails handles POST /api/v1/opportunity-collections/rfp-details
func (h *CollectionHandler) CreateRFPDetails(c *gin.Context) {
	var req createRFPDetailsCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	rfp, err := h.rfpService.CreateDetails(req.OpportunityID, req.CreateRFPDetailsRequest)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			responses.Fail(c, http.StatusNotFound, err, "Opportunity not found")
		case errors.Is(err, services.ErrAlreadyExists):
			responses.Fail(c, http.StatusBadRequest, err, "RFP details already exist")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to create RFP details")
		}
		return
	}

	responses.Success(c, http.StatusCreated, rfp, "RFP details created successfully")
}

// ListRFPDocuments handles GET /api/v1/opportunity-collections/rfp-documents
func (h *CollectionHandler) ListRFPDocuments(c *gin.Context) {
	documents, err := h.rfpService.ListDocuments(c.Query("opportunity_id"), c.Query("document_type"))
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve RFP documents")
		return
	}

	responses.Success(c, http.StatusOK, documents, "RFP documents retrieved successfully")
}

type createRFPDocumentCollectionRequest struct {
	OpportunityID string `json:"opportunity_id" binding:"required"`
	services.CreateRFPDocumentRequest
}

// CreateRFPDocument handles POST /api/v1/opportunity-collections/rfp-documents
func (h *CollectionHandler) CreateRFPDocument(c *gin.Context) {
	var req createRFPDocumentCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	doc, err := h.rfpService.CreateDocument(req.OpportunityID, req.CreateRFPDocumentRequest, currentUserEmail(c))
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to upload RFP document")
		return
	}

	responses.Success(c, http.StatusCreated, doc, "RFP document uploaded successfully")
}

// ListSOWDetails handles GET /api/v1/opportunity-collections/sow-details
func (h *CollectionHandler) ListSOWDetails(c *gin.Context) {
	details, err := h.sowService.ListDetails(c.Query("opportunity_id"))
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve SOW details")
		return
	}

	responses.Success(c, http.StatusOK, details, "SOW details retrieved successfully")
}

type createSOWDetailsCollectionRequest struct {
	OpportunityID string `json:"opportunity_id" binding:"required"`
	services.CreateSOWDetailsRequest
}

// CreateSOWDetails handles POST /api/v1/opportunity-collections/sow-details
func (h *CollectionHandler) CreateSOWDetails(c *gin.Context) {
	var req createSOWDetailsCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	sow, err := h.sowService.CreateDetails(req.OpportunityID, req.CreateSOWDetailsRequest)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			responses.Fail(c, http.StatusNotFound, err, "Opportunity not found")
		case errors.Is(err, services.ErrAlreadyExists):
			responses.Fail(c, http.StatusBadRequest, err, "SOW details already exist")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to create SOW details")
		}
		return
	}

	responses.Success(c, http.StatusCreated, sow, "SOW details created successfully")
}

// ListSOWDocuments handles GET /api/v1/opportunity-collections/sow-documents
func (h *CollectionHandler) ListSOWDocuments(c *gin.Context) {
	sowID := uuid.Nil
	if raw := c.Query("sow_id"); raw != "" {
		parsed, err := utils.ParseUUID(raw)
		if err != nil {
			responses.Fail(c, http.StatusBadRequest, err, "Invalid SOW ID")
			return
		}
		sowID = parsed
	}

	documents, err := h.sowService.ListDocumentsBySOWID(sowID)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve SOW documents")
		return
	}

	responses.Success(c, http.StatusOK, documents, "SOW documents retrieved successfully")
}

type createSOWDocumentCollectionRequest struct {
	OpportunityID string `json:"opportunity_id" binding:"required"`
	services.CreateSOWDocumentRequest
}

// CreateSOWDocument handles POST /api/v1/opportunity-collections/sow-documents
func (h *CollectionHandler) CreateSOWDocument(c *gin.Context) {
	var req createSOWDocumentCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	doc, err := h.sowService.CreateDocument(req.OpportunityID, req.CreateSOWDocumentRequest)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "SOW details not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to upload SOW document")
		return
	}

	responses.Success(c, http.StatusCreated, doc, "SOW document uploaded successfully")
}
