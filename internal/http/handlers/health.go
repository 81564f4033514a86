package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StoreProbe is the slice of the knowledge store health reporting needs.
type StoreProbe interface {
	Available() bool
	NodeCount(ctx context.Context) (int64, error)
}

type HealthHandler struct {
	store StoreProbe
	now   func() time.Time
}

func NewHealthHandler(store StoreProbe) *HealthHandler {
	return &HealthHandler{store: store, now: time.Now}
}

// GET /healthcheck
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

type HealthStatus struct {
	API       string `json:"api"`
	Neo4j     string `json:"neo4j"`
	Timestamp string `json:"timestamp"`
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthStatus{
		API:       "healthy",
		Neo4j:     h.storeStatus(c.Request.Context()),
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) storeStatus(ctx context.Context) string {
	if h.store == nil || !h.store.Available() {
		return "disconnected"
	}
	n, err := h.store.NodeCount(ctx)
	if err != nil {
		return "error"
	}
	return fmt.Sprintf("connected (%d nodes)", n)
}
