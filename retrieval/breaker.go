package retrieval

import (
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerSettings configures the circuit breaker around the similarity index.
type BreakerSettings struct {
	Name string
	// MaxRequests is the number of trial calls allowed while half-open.
	MaxRequests uint32
	// Interval resets failure counts while closed.
	Interval time.Duration
	// Timeout is how long the breaker stays open before trying again.
	Timeout time.Duration
	// MinRequests is the sample size needed before the breaker may trip.
	MinRequests uint32
	// FailureRatio trips the breaker once reached.
	FailureRatio float64
}

// DefaultBreakerSettings trips after 60% failures over at least 5 calls and
// probes again after 30 seconds.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:         "similarity-index",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

// BreakerObserver is notified of breaker state transitions and outcomes.
type BreakerObserver interface {
	BreakerStateChanged(name, from, to string)
	BreakerCall(name, outcome string)
}

type noopBreakerObserver struct{}

func (noopBreakerObserver) BreakerStateChanged(_, _, _ string) {}
func (noopBreakerObserver) BreakerCall(_, _ string)          {}

// Breaker call outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

func (r *Retriever) newBreaker(s BreakerSettings) *gobreaker.CircuitBreaker[any] {
	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= s.FailureRatio {
				r.logger.Warn("opening circuit breaker",
					"breaker", s.Name,
					"failures", counts.TotalFailures,
					"failure_ratio", ratio)
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.logger.Info("circuit breaker state transition",
				"breaker", name,
				"from", stateName(from),
				"to", stateName(to))
			r.observer.BreakerStateChanged(name, stateName(from), stateName(to))
		},
	})
}

// execute runs fn under the breaker and maps rejections to ErrIndexUnavailable.
func (r *Retriever) execute(fn func() (any, error)) (any, error) {
	result, err := r.breaker.Execute(fn)
	name := r.breaker.Name()
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			r.observer.BreakerCall(name, OutcomeRejected)
			return nil, fmt.Errorf("%w: %w", ErrIndexUnavailable, err)
		}
		r.observer.BreakerCall(name, OutcomeFailure)
		return nil, err
	}
	r.observer.BreakerCall(name, OutcomeSuccess)
	return result, nil
}

// BreakerState reports the current breaker state: closed, half-open or open.
func (r *Retriever) BreakerState() string {
	return stateName(r.breaker.State())
}

func stateName(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
