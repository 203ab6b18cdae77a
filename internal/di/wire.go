//go:build wireinject
// +build wireinject

package di

import (
	"RegimePulse/pkg/config"
	"RegimePulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Engine services
		ProvideScorer,
		ProvideClassifier,
		ProvideComputationCache,

		// Downstream publishing
		ProvideSignalPublisher,

		// Use cases and transport
		ProvideEvaluator,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
