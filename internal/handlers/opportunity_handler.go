package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salescrm/internal/responses"
	"salescrm/internal/services"
)

type OpportunityHandler struct {
	oppService *services.OpportunityService
}

func NewOpportunityHandler(oppService *services.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{oppService: oppService}
}

// currentUserEmail reads the email the Authenticate middleware stored.
func currentUserEmail(c *gin.Context) string {
	if email, exists := c.Get("userEmail"); exists {
		if s, ok := email.(string); ok {
			return s
		}
	}
	return "system"
}

// ListOpportunities handles GET /api/v1/opportunities
func (h *OpportunityHandler) ListOpportunities(c *gin.Context) {
	opportunities, err := h.oppService.List("", "", 0, 1000)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve opportunities")
		return
	}

	responses.Success(c, http.StatusOK, opportunities, "Opportunities retrieved successfully")
}

// CreateOpportunity handles POST /api/v1/opportunities
func (h *OpportunityHandler) CreateOpportunity(c *gin.Context) {
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

// GetOpportunity handles GET /api/v1/opportunities/:id — the complete
// view with all related records.
func (h *OpportunityHandler) GetOpportunity(c *gin.Context) {
	view, err := h.oppService.GetView(c.Param("id"))
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

// UpdateOpportunity handles PUT /api/v1/opportunities/:id
func (h *OpportunityHandler) UpdateOpportunity(c *gin.Context) {
	var req services.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	opp, err := h.oppService.Update(c.Param("id"), req)
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

// DeleteOpportunity handles DELETE /api/v1/opportunities/:id
func (h *OpportunityHandler) DeleteOpportunity(c *gin.Context) {
	if err := h.oppService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "Opportunity not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to delete opportunity")
		return
	}

	c.Status(http.StatusNoContent)
}
