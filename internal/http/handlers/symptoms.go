package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/healthtrack-backend/internal/http/response"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
	"github.com/yungbote/healthtrack-backend/internal/services"
)

type SymptomHandler struct {
	log     *logger.Logger
	suggest services.SuggestService
}

func NewSymptomHandler(log *logger.Logger, suggest services.SuggestService) *SymptomHandler {
	return &SymptomHandler{log: log.With("handler", "SymptomHandler"), suggest: suggest}
}

// GET /symptoms/autocomplete?q=
// Failures degrade to an empty list with an error note, never a 5xx.
func (h *SymptomHandler) Autocomplete(c *gin.Context) {
	out, err := h.suggest.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.log.Warn("autocomplete failed", "error", err)
		response.RespondOK(c, gin.H{"suggestions": []string{}, "error": "suggestions unavailable"})
		return
	}
	response.RespondOK(c, gin.H{"suggestions": out})
}
