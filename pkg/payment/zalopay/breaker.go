package zalopay

import (
	"net/http"
	"time"

	circuit "github.com/rubyist/circuitbreaker"
	"go.uber.org/zap"
)

// NewBreakerClient wraps outbound gateway calls in a consecutive-failure breaker
func NewBreakerClient(timeout time.Duration, threshold int64, log *zap.Logger) *circuit.HTTPClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if threshold <= 0 {
		threshold = 5
	}

	client := circuit.NewHTTPClient(timeout, threshold, &http.Client{Timeout: timeout})
	client.BreakerTripped = func() {
		log.Warn("zalopay circuit breaker tripped", zap.Int64("threshold", threshold))
	}
	client.BreakerReset = func() {
		log.Info("zalopay circuit breaker reset")
	}
	return client
}
