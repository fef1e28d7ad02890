package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salescrm/internal/responses"
	"salescrm/internal/services"
	"salescrm/internal/utils"
)

type SOWHandler struct {
	sowService *services.SOWService
}

func NewSOWHandler(sowService *services.SOWService) *SOWHandler {
	return &SOWHandler{sowService: sowService}
}

// GetSOWDetails handles GET /api/v1/opportunities/:id/sow-details
func (h *SOWHandler) GetSOWDetails(c *gin.Context) {
	sow, err := h.sowService.GetDetails(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "SOW details not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve SOW details")
		return
	}

	responses.Success(c, http.StatusOK, sow, "SOW details retrieved successfully")
}

// CreateSOWDetails handles POST /api/v1/opportunities/:id/sow-details
func (h *SOWHandler) CreateSOWDetails(c *gin.Context) {
	var req services.CreateSOWDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	sow, err := h.sowService.CreateDetails(c.Param("id"), req)
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

// UpdateSOWDetails handles PUT /api/v1/opportunities/:id/sow-details
func (h *SOWHandler) UpdateSOWDetails(c *gin.Context) {
	var req services.UpdateSOWDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	sow, err := h.sowService.UpdateDetails(c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoFields):
			responses.Fail(c, http.StatusBadRequest, err, "No fields to update")
		case errors.Is(err, services.ErrNotFound):
			responses.Fail(c, http.StatusNotFound, err, "SOW details not found")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to update SOW details")
		}
		return
	}

	responses.Success(c, http.StatusOK, sow, "SOW details updated successfully")
}

// ListSOWDocuments handles GET /api/v1/opportunities/:id/sow-documents
func (h *SOWHandler) ListSOWDocuments(c *gin.Context) {
	documents, err := h.sowService.ListDocuments(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "SOW details not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve SOW documents")
		return
	}

	responses.Success(c, http.StatusOK, documents, "SOW documents retrieved successfully")
}

// UploadSOWDocument handles POST /api/v1/opportunities/:id/sow-documents
func (h *SOWHandler) UploadSOWDocument(c *gin.Context) {
	var req services.CreateSOWDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	doc, err := h.sowService.CreateDocument(c.Param("id"), req)
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

// DeleteSOWDocument handles DELETE /api/v1/opportunities/:id/sow-documents/:document_id
func (h *SOWHandler) DeleteSOWDocument(c *gin.Context) {
	documentID, err := utils.ParseUUID(c.Param("document_id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid document ID")
		return
	}

	if err := h.sowService.DeleteDocument(c.Param("id"), documentID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "Document not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to delete SOW document")
		return
	}

	c.Status(http.StatusNoContent)
}
