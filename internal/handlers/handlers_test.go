package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"salescrm/internal/responses"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handler gin.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	router := gin.New()
	router.Handle(method, "/opportunities/:id", handler)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) responses.APIResponse {
	t.Helper()
	var resp responses.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response body %q: %v", w.Body.String(), err)
	}
	return resp
}

// Malformed bodies must be rejected before any service call, so a nil
// service is enough to exercise these paths.

func TestCreateOpportunity_InvalidBody(t *testing.T) {
	h := NewOpportunityHandler(nil)
	w := performRequest(h.CreateOpportunity, http.MethodPost, "/opportunities/OPP-001", "{not json")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Status != "error" {
		t.Fatalf("expected error status got %q", resp.Status)
	}
}

func TestCreateOpportunity_MissingRequiredFields(t *testing.T) {
	h := NewOpportunityHandler(nil)
	w := performRequest(h.CreateOpportunity, http.MethodPost, "/opportunities/OPP-001", `{"amount": 100}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing required fields got %d", w.Code)
	}
}

func TestUpdateOpportunity_InvalidBody(t *testing.T) {
	h := NewOpportunityHandler(nil)
	w := performRequest(h.UpdateOpportunity, http.MethodPut, "/opportunities/OPP-001", "[")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestUpdateRFPDetails_InvalidBody(t *testing.T) {
	h := NewRFPHandler(nil)
	w := performRequest(h.UpdateRFPDetails, http.MethodPut, "/opportunities/OPP-001", "{not json")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestUploadRFPDocument_MissingRequiredFields(t *testing.T) {
	h := NewRFPHandler(nil)
	w := performRequest(h.UploadRFPDocument, http.MethodPost, "/opportunities/OPP-001", `{"file_name": "a.pdf"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing file_url got %d", w.Code)
	}
}

func TestDeleteRFPDocument_InvalidDocumentID(t *testing.T) {
	h := NewRFPHandler(nil)
	router := gin.New()
	router.DELETE("/opportunities/:id/rfp-documents/:document_id", h.DeleteRFPDocument)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/opportunities/OPP-001/rfp-documents/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid document id got %d", w.Code)
	}
}

func TestUploadSOWDocument_InvalidBody(t *testing.T) {
	h := NewSOWHandler(nil)
	w := performRequest(h.UploadSOWDocument, http.MethodPost, "/opportunities/OPP-001", "{not json")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestCurrentUserEmail_Fallback(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := currentUserEmail(c); got != "system" {
		t.Fatalf("expected fallback email %q got %q", "system", got)
	}

	c.Set("userEmail", "sales@example.com")
	if got := currentUserEmail(c); got != "sales@example.com" {
		t.Fatalf("expected %q got %q", "sales@example.com", got)
	}
}
