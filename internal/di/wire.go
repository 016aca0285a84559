//go:build wireinject
// +build wireinject

package di

import (
	"BrentLens/pkg/config"
	"BrentLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Data source
		ProvideTables,
		ProvideSource,

		// Use cases
		ProvideDataset,
		ProvideQueryService,

		// HTTP
		ProvideHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}
