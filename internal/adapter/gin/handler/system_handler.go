package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"simple-crud-api/pkg/i18n"
)

// endpoints is the static discovery map returned by the home route
var endpoints = map[string][]string{
	http.MethodGet:    {"/", "/users", "/users/<id>", "/items"},
	http.MethodPost:   {"/users", "/items"},
	http.MethodPut:    {"/users/<id>"},
	http.MethodDelete: {"/users/<id>", "/items/<id>"},
}

// SystemHandler serves the home and health routes and the global 404/405 responses
type SystemHandler struct {
	tr  *i18n.Translator
	now func() time.Time
}

// NewSystemHandler creates a new SystemHandler instance
func NewSystemHandler(tr *i18n.Translator) *SystemHandler {
	return &SystemHandler{
		tr:  tr,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// HomeResponse is the welcome payload
type HomeResponse struct {
	Message   string              `json:"message"`
	Status    string              `json:"status"`
	Timestamp time.Time           `json:"timestamp"`
	Endpoints map[string][]string `json:"endpoints"`
}

// HealthResponse is the health payload
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Home handles GET /
func (h *SystemHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, HomeResponse{
		Message:   h.tr.T(i18n.Welcome),
		Status:    "success",
		Timestamp: h.now(),
		Endpoints: endpoints,
	})
}

// Health handles GET /health. No dependencies are checked.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now(),
	})
}

// NotFound answers requests for unknown paths
func (h *SystemHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   h.tr.T(i18n.NotFoundTitle),
		Message: h.tr.T(i18n.NotFoundDetail),
		Path:    c.Request.URL.Path,
	})
}

// MethodNotAllowed answers known paths requested with an unsupported method
func (h *SystemHandler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
		Error:   h.tr.T(i18n.MethodNotAllowedTitle),
		Message: h.tr.T(i18n.MethodNotAllowed, c.Request.Method),
	})
}
