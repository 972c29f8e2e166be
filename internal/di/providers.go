package di

import (
	"fmt"

	"fraudscore/internal/domain/repository"
	"fraudscore/internal/handler/api"
	"fraudscore/internal/model"
	"fraudscore/internal/usecase"
	"fraudscore/pkg/config"
	xhttp "fraudscore/pkg/http"
	applogger "fraudscore/pkg/logger"
	"fraudscore/pkg/metrics"
	"fraudscore/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideModelHost creates the model host for the configured artifact path.
// Loading happens in App.Run, not here: construction must never fail on a
// missing artifact.
func ProvideModelHost(cfg *config.Config, l *applogger.Logger, m repository.Metrics) *model.Host {
	return model.NewHost(cfg.Model.Path, l, m)
}

// ProvideFraudScorer creates the prediction service.
func ProvideFraudScorer(host *model.Host, m repository.Metrics, l *applogger.Logger) *usecase.FraudScorer {
	return usecase.NewFraudScorer(host, m, l)
}

// ProvideHandler creates the HTTP handler for the prediction API.
func ProvideHandler(l *applogger.Logger, scorer *usecase.FraudScorer) xhttp.Handler {
	return api.NewPredictEchoHandler(l, scorer)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, host *model.Host, handler xhttp.Handler, l *applogger.Logger) *server.App {
	return server.New(cfg, host, handler, l)
}
