//go:build wireinject
// +build wireinject

package di

import (
	"fraudscore/pkg/config"
	"fraudscore/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Model lifecycle
		ProvideModelHost,

		// Prediction path
		ProvideFraudScorer,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
