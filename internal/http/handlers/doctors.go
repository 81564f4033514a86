package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/healthtrack-backend/internal/domain"
	"github.com/yungbote/healthtrack-backend/internal/http/response"
	"github.com/yungbote/healthtrack-backend/internal/platform/apierr"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
	"github.com/yungbote/healthtrack-backend/internal/providers"
)

type DoctorHandler struct {
	log      *logger.Logger
	dir      providers.Directory
	location string
}

func NewDoctorHandler(log *logger.Logger, dir providers.Directory, location string) *DoctorHandler {
	return &DoctorHandler{log: log.With("handler", "DoctorHandler"), dir: dir, location: location}
}

// GET /doctors/recommend/:condition
func (h *DoctorHandler) Recommend(c *gin.Context) {
	condition := strings.TrimSpace(c.Param("condition"))
	if condition == "" {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", errMissingCondition))
		return
	}
	rec, err := providers.Recommend(c.Request.Context(), h.dir, condition, h.location)
	if err != nil {
		h.log.Error("provider lookup failed", "error", err, "condition", condition)
		response.RespondAPIError(c, apierr.New(http.StatusBadGateway, "provider_lookup_failed", errProviderLookup))
		return
	}
	response.RespondOK(c, rec)
}

type SearchQuery struct {
	Specialization string   `form:"specialization" binding:"omitempty,max=100"`
	RatingMin      *float64 `form:"rating_min" binding:"omitempty,min=0,max=5"`
}

// GET /doctors/search?specialization=&rating_min=
func (h *DoctorHandler) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", err))
		return
	}
	found, total, err := h.dir.Search(c.Request.Context(), domain.ProviderFilter{
		Specialization: q.Specialization,
		MinRating:      q.RatingMin,
		Limit:          providers.SearchLimit,
	})
	if err != nil {
		h.log.Error("provider search failed", "error", err)
		response.RespondAPIError(c, apierr.New(http.StatusBadGateway, "provider_lookup_failed", errProviderLookup))
		return
	}
	response.RespondOK(c, gin.H{"doctors": found, "count": total})
}
