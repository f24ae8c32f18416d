package enrich

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// newBreaker trips after failures consecutive errors and probes again after
// reset.
func newBreaker(name string, failures int, reset time.Duration) *gobreaker.CircuitBreaker {
	if failures <= 0 {
		failures = 5
	}
	if reset <= 0 {
		reset = 30 * time.Second
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    reset,
		Timeout:     reset,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= uint32(failures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
}
