package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/healthtrack-backend/internal/http/handlers"
	httpMW "github.com/yungbote/healthtrack-backend/internal/http/middleware"
	"github.com/yungbote/healthtrack-backend/internal/observability"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	AllowedOrigins []string
	ServiceName    string

	RootHandler    *httpH.RootHandler
	HealthHandler  *httpH.HealthHandler
	GraphHandler   *httpH.GraphHandler
	AnalyzeHandler *httpH.AnalyzeHandler
	SymptomHandler *httpH.SymptomHandler
	DoctorHandler  *httpH.DoctorHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	httpH.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	if cfg.Metrics != nil {
		r.Use(httpMW.Metrics(cfg.Metrics))
	}
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	if cfg.RootHandler != nil {
		r.GET("/", cfg.RootHandler.Info)
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/health", cfg.HealthHandler.Health)
	}
	if cfg.GraphHandler != nil {
		r.GET("/graph-stats", cfg.GraphHandler.Stats)
	}

	// Analysis
	if cfg.AnalyzeHandler != nil {
		r.POST("/analyze", cfg.AnalyzeHandler.Analyze)
	}
	if cfg.SymptomHandler != nil {
		r.GET("/symptoms/autocomplete", cfg.SymptomHandler.Autocomplete)
	}

	// Providers
	if cfg.DoctorHandler != nil {
		r.GET("/doctors/recommend/:condition", cfg.DoctorHandler.Recommend)
		r.GET("/doctors/search", cfg.DoctorHandler.Search)
	}

	return r
}
