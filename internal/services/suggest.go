package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
)

const (
	suggestKeyPrefix  = "suggest:"
	DefaultSuggestTTL = 10 * time.Minute
	SuggestLimit      = 10
)

// SymptomSource is the store side of autocomplete.
type SymptomSource interface {
	SuggestSymptoms(ctx context.Context, q string, limit int) ([]string, error)
}

// SuggestObserver records cache outcomes: "hit", "miss" or "bypass".
type SuggestObserver interface {
	ObserveSuggest(outcome string)
}

type SuggestService interface {
	Suggest(ctx context.Context, q string) ([]string, error)
}

type suggestService struct {
	log    *logger.Logger
	source SymptomSource
	rdb    goredis.UniversalClient
	ttl    time.Duration
	obs    SuggestObserver
}

// NewSuggestService wraps source with a read-through Redis cache. rdb may be nil, in which
// case every call goes to the source.
func NewSuggestService(log *logger.Logger, source SymptomSource, rdb goredis.UniversalClient, ttl time.Duration, obs SuggestObserver) SuggestService {
	if ttl <= 0 {
		ttl = DefaultSuggestTTL
	}
	return &suggestService{
		log:    log.With("service", "SuggestService"),
		source: source,
		rdb:    rdb,
		ttl:    ttl,
		obs:    obs,
	}
}

func (s *suggestService) Suggest(ctx context.Context, q string) ([]string, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" || s.source == nil {
		return []string{}, nil
	}
	key := suggestKeyPrefix + q

	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var cached []string
			if jerr := json.Unmarshal(raw, &cached); jerr == nil {
				s.observe("hit")
				return cached, nil
			}
			s.log.Warn("suggest cache entry unreadable (refetching)", "key", key)
		case errors.Is(err, goredis.Nil):
		default:
			s.log.Warn("suggest cache read failed (continuing)", "error", err)
		}
	}

	if s.rdb != nil {
		s.observe("miss")
	} else {
		s.observe("bypass")
	}
	out, err := s.source.SuggestSymptoms(ctx, q, SuggestLimit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}

	if s.rdb != nil {
		if raw, jerr := json.Marshal(out); jerr == nil {
			if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
				s.log.Warn("suggest cache write failed (continuing)", "error", err)
			}
		}
	}
	return out, nil
}

func (s *suggestService) observe(outcome string) {
	if s.obs != nil {
		s.obs.ObserveSuggest(outcome)
	}
}
