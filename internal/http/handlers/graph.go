package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/healthtrack-backend/internal/domain"
	"github.com/yungbote/healthtrack-backend/internal/http/response"
	"github.com/yungbote/healthtrack-backend/internal/platform/apierr"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
)

type StatsReader interface {
	Stats(ctx context.Context) (domain.GraphStats, error)
}

type GraphHandler struct {
	log   *logger.Logger
	stats StatsReader
}

func NewGraphHandler(log *logger.Logger, stats StatsReader) *GraphHandler {
	return &GraphHandler{log: log.With("handler", "GraphHandler"), stats: stats}
}

// GET /graph-stats
func (h *GraphHandler) Stats(c *gin.Context) {
	if h.stats == nil {
		response.RespondAPIError(c, apierr.Unavailable("store_unavailable", domain.ErrStoreUnavailable))
		return
	}
	out, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		h.log.Warn("graph stats failed", "error", err)
		if errors.Is(err, domain.ErrStoreUnavailable) {
			response.RespondAPIError(c, apierr.Unavailable("store_unavailable", domain.ErrStoreUnavailable))
			return
		}
		response.RespondAPIError(c, apierr.New(http.StatusBadGateway, "store_error", errors.New("graph stats query failed")))
		return
	}
	response.RespondOK(c, out)
}
