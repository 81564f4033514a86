package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/healthtrack-backend/internal/http/response"
)

type RootHandler struct {
	version string
	store   StoreProbe
}

func NewRootHandler(version string, store StoreProbe) *RootHandler {
	return &RootHandler{version: version, store: store}
}

// GET /
func (h *RootHandler) Info(c *gin.Context) {
	status := "Neo4j Disconnected"
	if h.store != nil && h.store.Available() {
		status = "Neo4j Connected"
	}
	response.RespondOK(c, gin.H{
		"message": "HealthTrack AI API",
		"version": h.version,
		"status":  status,
		"endpoints": gin.H{
			"health":       "/health",
			"graph_stats":  "/graph-stats",
			"analyze":      "/analyze (POST)",
			"autocomplete": "/symptoms/autocomplete?q=",
			"doctors":      "/doctors/recommend/:condition",
			"search":       "/doctors/search",
		},
	})
}
