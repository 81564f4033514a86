package diagnosis

import (
	"context"
	"errors"
	"time"

	"github.com/yungbote/healthtrack-backend/internal/domain"
	"github.com/yungbote/healthtrack-backend/internal/platform/ctxutil"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
)

// Recorder observes finished analyses. Metrics plug in here.
type Recorder interface {
	ObserveAnalysis(status domain.AnalysisStatus, tier domain.EmergencyTier, candidates int, elapsed time.Duration)
}

type Engine struct {
	log        *logger.Logger
	sentinel   *Sentinel
	ranker     *Ranker
	projection *ProjectionBuilder
	recorder   Recorder
}

// New wires the pipeline around one store. A nil store is allowed: the static emergency
// tier still works and everything else reports store_unavailable.
func New(store KnowledgeStore, log *logger.Logger, opts Options) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	opts = opts.withDefaults()
	return &Engine{
		log:        log.With("service", "DiagnosisEngine"),
		sentinel:   NewSentinel(store, log),
		ranker:     NewRanker(store, log, opts),
		projection: NewProjectionBuilder(store, log, opts),
	}
}

func (e *Engine) WithRecorder(r Recorder) *Engine {
	e.recorder = r
	return e
}

func (e *Engine) Sentinel() *Sentinel { return e.sentinel }

func (e *Engine) Ranker() *Ranker { return e.ranker }

// Analyze runs emergency screening, ranking and projection for one request. It always
// returns a well-formed Analysis.
func (e *Engine) Analyze(ctx context.Context, raw []string) domain.Analysis {
	start := time.Now()
	log := e.log.With(ctxutil.LogFields(ctx)...)
	log.Info("Analyzing symptoms", "count", len(raw))

	emergency := e.sentinel.CheckEmergency(ctx, raw)
	if emergency.Triggered {
		msg := emergency.Message
		out := domain.Analysis{
			Predictions:      []domain.Candidate{},
			Graph:            domain.EmptyProjection(),
			EmergencyWarning: &msg,
			Disclaimer:       domain.DisclaimerEmergency,
			Status:           domain.StatusEmergency,
		}
		e.observe(out, emergency.Tier, start)
		log.Info("Analysis complete", "status", out.Status, "tier", emergency.Tier)
		return out
	}

	out := domain.Analysis{
		Predictions: []domain.Candidate{},
		Graph:       domain.EmptyProjection(),
		Disclaimer:  domain.DisclaimerGeneral,
		Status:      domain.StatusOK,
	}

	candidates, err := e.ranker.rank(ctx, NormalizeAll(raw))
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			out.Status = domain.StatusStoreUnavailable
		}
		log.Warn("ranking failed", "error", err)
	}
	if len(candidates) > 0 {
		out.Predictions = candidates
		out.Graph = e.projection.Project(ctx, raw, candidates)
	}

	e.observe(out, emergency.Tier, start)
	log.Info("Analysis complete", "status", out.Status, "predictions", len(out.Predictions), "nodes", len(out.Graph.Nodes))
	return out
}

func (e *Engine) observe(a domain.Analysis, tier domain.EmergencyTier, start time.Time) {
	if e.recorder == nil {
		return
	}
	e.recorder.ObserveAnalysis(a.Status, tier, len(a.Predictions), time.Since(start))
}
