package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/yungbote/healthtrack-backend/internal/domain"
	"github.com/yungbote/healthtrack-backend/internal/http/response"
	"github.com/yungbote/healthtrack-backend/internal/platform/apierr"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
)

type Analyzer interface {
	Analyze(ctx context.Context, symptoms []string) domain.Analysis
}

// AnalyzeRequest is the POST /analyze body. user_age and user_gender are accepted for
// client compatibility and only logged.
type AnalyzeRequest struct {
	Symptoms   []string `json:"symptoms" binding:"required,max=50,dive,max=200"`
	UserAge    *int     `json:"user_age" binding:"omitempty,min=0,max=130"`
	UserGender string   `json:"user_gender" binding:"omitempty,gender"`
}

type AnalyzeHandler struct {
	log    *logger.Logger
	engine Analyzer
}

func NewAnalyzeHandler(log *logger.Logger, engine Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{log: log.With("handler", "AnalyzeHandler"), engine: engine}
}

// POST /analyze
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", describeBindError(err)))
		return
	}
	h.log.Debug("analyze request",
		"symptoms", len(req.Symptoms),
		"user_age", req.UserAge,
		"user_gender", req.UserGender,
	)
	response.RespondOK(c, h.engine.Analyze(c.Request.Context(), req.Symptoms))
}

func describeBindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return errors.New("symptoms is required")
	case "gender":
		return errors.New("user_gender must be one of male, female, other")
	default:
		return errors.New(fe.Namespace() + " failed " + fe.Tag() + " " + fe.Param())
	}
}

