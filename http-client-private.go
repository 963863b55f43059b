package forgeclient

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type executorCreationParameters struct {
	backoffUnit              time.Duration
	maxRedirects             int
	sleeper                  Sleeper
	logger                   zerolog.Logger
	registerer               prometheus.Registerer
	circuitBreakerParameters *circuitBreakerParameters
}

type circuitBreakerParameters struct {
	maxRequests         uint32
	consecutiveFailures uint32
	interval            time.Duration
	timeout             time.Duration
}
