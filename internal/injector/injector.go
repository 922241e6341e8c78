//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/shoalsync/internal/config"
	"github.com/zeusync/shoalsync/internal/core/world"
	"github.com/zeusync/shoalsync/internal/server"
)

func InitializeWorld(cfg *config.Config) (*world.World, error) {
	wire.Build(CoreSet)
	return nil, nil
}

func InitializeStreamer(cfg *config.Config) (*server.Streamer, error) {
	wire.Build(ServerSet)
	return nil, nil
}
