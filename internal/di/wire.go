//go:build wireinject
// +build wireinject

package di

import (
	"streampulse/pkg/config"
	"streampulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Upstream + infrastructure clients
		ProvideStatsSource,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideEventStream,

		// Repositories
		ProvideEventPublisher,

		// Overlay state + pipeline + use cases
		ProvideOverlayState,
		ProvideEventProcessor,
		ProvideEventPipeline,
		ProvideOverlayCollector,
		ProvideKafkaEventsHandler,

		// HTTP handlers
		ProvideRadarDivisors,
		ProvideDashboardHandler,
		ProvideOverlayHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
