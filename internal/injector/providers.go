// Package injector wires the simulation together from a loaded config.
package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/shoalsync/internal/config"
	"github.com/zeusync/shoalsync/internal/core/idle"
	"github.com/zeusync/shoalsync/internal/core/observability/log"
	"github.com/zeusync/shoalsync/internal/core/schooling"
	"github.com/zeusync/shoalsync/internal/core/systems"
	"github.com/zeusync/shoalsync/internal/core/world"
	"github.com/zeusync/shoalsync/internal/server"
)

var CoreSet = wire.NewSet(
	ProvideLogger,
	ProvideParameters,
	ProvideChances,
	schooling.NewSystem,
	idle.NewSystem,
	systems.NewMotion,
	ProvideManager,
	ProvideWorldConfig,
	ProvideWorld,
)

var ServerSet = wire.NewSet(
	CoreSet,
	ProvideServerConfig,
	wire.Bind(new(server.Simulation), new(*world.World)),
	server.NewStreamer,
)

func ProvideLogger(cfg *config.Config) (log.Log, error) {
	logger, err := log.New(cfg.LogLevel(), log.Options{Encoding: cfg.Logging.Encoding})
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func ProvideParameters(cfg *config.Config) schooling.Parameters { return cfg.Parameters() }
func ProvideChances(cfg *config.Config) idle.Chances            { return cfg.Chances() }

// ProvideManager registers the per-agent systems. Priorities put schooling
// first, then idle drift, then motion.
func ProvideManager(s *schooling.System, i *idle.System, m *systems.Motion) (*systems.Manager, error) {
	return systems.NewManager(s, i, m)
}

func ProvideWorldConfig(cfg *config.Config) world.Config {
	return world.Config{
		Seed:    cfg.Simulation.Seed,
		Dt:      cfg.Simulation.Dt,
		Area:    cfg.Area(),
		Workers: cfg.Simulation.Workers,
		Origin:  cfg.Origin(),
	}
}

// ProvideWorld builds the world and populates it from the config.
func ProvideWorld(cfg *config.Config, wc world.Config, m *systems.Manager, logger log.Log) (*world.World, error) {
	w, err := world.New(wc, m, logger)
	if err != nil {
		return nil, err
	}
	w.Populate(cfg.Simulation.Agents, cfg.Idle.InitialStress)
	return w, nil
}

func ProvideServerConfig(cfg *config.Config) server.Config {
	sc := server.DefaultConfig()
	sc.ListenAddr = cfg.Server.Addr
	sc.TickRate = cfg.Server.TickRate
	sc.MaxClients = cfg.Server.MaxClients
	sc.Glyphs = cfg.Server.Glyphs
	sc.SendBuffer = cfg.Server.SendBuffer
	return sc
}
