package resilient

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/RassulYunussov/forgeclient/internal/metrics"
)

type ExecutorParameters struct {
	BackoffUnit  time.Duration
	MaxRedirects int
	Sleeper      Sleeper
	Logger       zerolog.Logger
	Metrics      *metrics.Recorder
}
