// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	storeDriver        string
	storeHealthChecker func() bool
	sessionLoading     func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status       string `json:"status"`
	SessionStore string `json:"session_store"`
	Storage      string `json:"storage"`
	Restoring    bool   `json:"restoring"`
	Timestamp    string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(storeDriver string, storeHealthChecker func() bool, sessionLoading func() bool) *HealthController {
	return &HealthController{
		storeDriver:        storeDriver,
		storeHealthChecker: storeHealthChecker,
		sessionLoading:     sessionLoading,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the companion and its session storage.
func (h *HealthController) Check(c *gin.Context) {
	storageStatus := "disconnected"
	if h.storeHealthChecker != nil && h.storeHealthChecker() {
		storageStatus = "connected"
	}

	response := HealthResponse{
		Status:       "ok",
		SessionStore: h.storeDriver,
		Storage:      storageStatus,
		Restoring:    h.sessionLoading != nil && h.sessionLoading(),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}
