package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/healthtrack-backend/internal/config"
	"github.com/yungbote/healthtrack-backend/internal/http"
	httpH "github.com/yungbote/healthtrack-backend/internal/http/handlers"
	"github.com/yungbote/healthtrack-backend/internal/observability"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
)

type Handlers struct {
	Root    *httpH.RootHandler
	Health  *httpH.HealthHandler
	Graph   *httpH.GraphHandler
	Analyze *httpH.AnalyzeHandler
	Symptom *httpH.SymptomHandler
	Doctor  *httpH.DoctorHandler
}

func wireHandlers(log *logger.Logger, cfg *config.Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Root:    httpH.NewRootHandler(cfg.Otel.Version, services.Store),
		Health:  httpH.NewHealthHandler(services.Store),
		Graph:   httpH.NewGraphHandler(log, services.Store),
		Analyze: httpH.NewAnalyzeHandler(log, services.Engine),
		Symptom: httpH.NewSymptomHandler(log, services.Suggest),
		Doctor:  httpH.NewDoctorHandler(log, services.Directory, cfg.Providers.Location),
	}
}

func wireRouter(log *logger.Logger, cfg *config.Config, handlers Handlers, metrics *observability.Metrics) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		ServiceName:    cfg.Otel.ServiceName,
		RootHandler:    handlers.Root,
		HealthHandler:  handlers.Health,
		GraphHandler:   handlers.Graph,
		AnalyzeHandler: handlers.Analyze,
		SymptomHandler: handlers.Symptom,
		DoctorHandler:  handlers.Doctor,
	})
}
