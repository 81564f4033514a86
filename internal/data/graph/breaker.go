package graph

import (
	"context"
	"errors"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sony/gobreaker"

	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
)

// BreakerSettings tunes the fail-fast breaker in front of the store. Only connectivity
// failures count against it; a bad query never opens the circuit.
type BreakerSettings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:             "neo4j",
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

func newBreaker(s BreakerSettings, log *logger.Logger, obs Observer) *gobreaker.CircuitBreaker {
	def := DefaultBreakerSettings()
	if s.Name == "" {
		s.Name = def.Name
	}
	if s.FailureThreshold <= 0 || s.FailureThreshold > 1 {
		s.FailureThreshold = def.FailureThreshold
	}
	if s.MinRequests == 0 {
		s.MinRequests = def.MinRequests
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			if obs != nil {
				obs.ObserveBreakerState(name, to.String())
			}
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !isConnectivityFailure(err)
		},
	})
}

// isConnectivityFailure reports whether err means the store could not be reached. A
// TransactionExecutionLimit counts when its last attempt failed that way.
func isConnectivityFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var connErr *neo4j.ConnectivityError
	if errors.As(err, &connErr) {
		return true
	}
	var limit *neo4j.TransactionExecutionLimit
	if errors.As(err, &limit) {
		for i := len(limit.Errors) - 1; i >= 0; i-- {
			if limit.Errors[i] != nil {
				return isConnectivityFailure(limit.Errors[i])
			}
		}
	}
	return false
}

func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
