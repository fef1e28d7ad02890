package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salescrm/internal/responses"
	"salescrm/internal/services"
	"salescrm/internal/utils"
)

type RFPHandler struct {
	rfpService *services.RFPService
}

func NewRFPHandler(rfpService *services.RFPService) *RFPHandler {
	return &RFPHandler{rfpService: rfpService}
}

// GetRFPDetails handles GET /api/v1/opportunities/:id/rfp-details
func (h *RFPHandler) GetRFPDetails(c *gin.Context) {
	rfp, err := h.rfpService.GetDetails(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "RFP details not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve RFP details")
		return
	}

	responses.Success(c, http.StatusOK, rfp, "RFP details retrieved successfully")
}

// CreateRFPDetails handles POST /api/v1/opportunities/:id/rfp-details
func (h *RFPHandler) CreateRFPDetails(c *gin.Context) {
	var req services.CreateRFPDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	rfp, err := h.rfpService.CreateDetails(c.Param("id"), req)
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

// UpdateRFPDetails handles PUT /api/v1/opportunities/:id/rfp-details
func (h *RFPHandler) UpdateRFPDetails(c *gin.Context) {
	var req services.UpdateRFPDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	rfp, err := h.rfpService.UpdateDetails(c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoFields):
			responses.Fail(c, http.StatusBadRequest, err, "No fields to update")
		case errors.Is(err, services.ErrNotFound):
			responses.Fail(c, http.StatusNotFound, err, "RFP details not found")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to update RFP details")
		}
		return
	}

	responses.Success(c, http.StatusOK, rfp, "RFP details updated successfully")
}

// ListRFPDocuments handles GET /api/v1/opportunities/:id/rfp-documents
func (h *RFPHandler) ListRFPDocuments(c *gin.Context) {
	documents, err := h.rfpService.ListDocuments(c.Param("id"), "")
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve RFP documents")
		return
	}

	responses.Success(c, http.StatusOK, documents, "RFP documents retrieved successfully")
}

// UploadRFPDocument handles POST /api/v1/opportunities/:id/rfp-documents
func (h *RFPHandler) UploadRFPDocument(c *gin.Context) {
	var req services.CreateRFPDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	doc, err := h.rfpService.CreateDocument(c.Param("id"), req, currentUserEmail(c))
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to upload RFP document")
		return
	}

	responses.Success(c, http.StatusCreated, doc, "RFP document uploaded successfully")
}

// DeleteRFPDocument handles DELETE /api/v1/opportunities/:id/rfp-documents/:document_id
func (h *RFPHandler) DeleteRFPDocument(c *gin.Context) {
	documentID, err := utils.ParseUUID(c.Param("document_id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid document ID")
		return
	}

	if err := h.rfpService.DeleteDocument(c.Param("id"), documentID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "Document not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to delete RFP document")
		return
	}

	c.Status(http.StatusNoContent)
}
