// Package harness wires flags, config, logging and pkg/profile together for
// the commands under profile/.
package harness

import (
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/edwinsyarief/kura"
	"github.com/edwinsyarief/kura/internal/config"
)

type Harness struct {
	Config *config.Config
	Logger zerolog.Logger
	name   string
}

// Setup parses args (without the program name), loads the config file named
// by --config and applies flag overrides on top of it.
func Setup(name string, args []string) (*Harness, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	path := fs.StringP("config", "c", "", "path to a .toml or .yaml config file")
	rounds := fs.Int("rounds", 0, "override run.rounds")
	iterations := fs.Int("iterations", 0, "override run.iterations")
	entities := fs.Int("entities", 0, "override run.entities")
	mode := fs.String("profile", "", "override profile.mode (cpu, mem, allocs, heap, block, trace, none)")
	level := fs.String("log-level", "", "override logging.level")
	if err := fs.Parse(args); err != nil {
		return nil, eris.Wrap(err, "parse flags")
	}

	cfg, err := config.Load(*path)
	if err != nil {
		return nil, err
	}
	if fs.Changed("rounds") {
		cfg.Run.Rounds = *rounds
	}
	if fs.Changed("iterations") {
		cfg.Run.Iterations = *iterations
	}
	if fs.Changed("entities") {
		cfg.Run.Entities = *entities
	}
	if fs.Changed("profile") {
		cfg.Profile.Mode = *mode
	}
	if fs.Changed("log-level") {
		cfg.Logging.Level = *level
	}
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "flags")
	}

	return &Harness{
		Config: cfg,
		Logger: config.NewLogger(cfg.Logging, os.Stderr).With().Str("harness", name).Logger(),
		name:   name,
	}, nil
}

// NewWorld builds a World configured from the run settings.
func (h *Harness) NewWorld() *kura.World {
	opts := []kura.Option{kura.WithLogger(h.Logger)}
	if h.Config.Run.PartitionCapacity > 0 {
		opts = append(opts, kura.WithPartitionCapacity(h.Config.Run.PartitionCapacity))
	}
	if h.Config.Run.StrictInvariants {
		opts = append(opts, kura.WithStrictInvariants())
	}
	return kura.NewWorld(opts...)
}

// Run profiles fn according to the profile settings and logs its duration.
func (h *Harness) Run(fn func() error) error {
	var p interface{ Stop() }
	if opts := profileOptions(h.Config.Profile); opts != nil {
		p = profile.Start(opts...)
	}
	h.Logger.Info().
		Int("rounds", h.Config.Run.Rounds).
		Int("iterations", h.Config.Run.Iterations).
		Int("entities", h.Config.Run.Entities).
		Str("profile", h.Config.Profile.Mode).
		Msg("starting")

	start := time.Now()
	err := fn()
	if p != nil {
		p.Stop()
	}
	if err != nil {
		h.Logger.Error().Err(err).Msg("run failed")
		return err
	}
	h.Logger.Info().Dur("elapsed", time.Since(start)).Msg("done")
	return nil
}

// profileOptions maps a profile mode onto pkg/profile options. It returns
// nil for mode "none".
func profileOptions(cfg config.ProfileConfig) []func(*profile.Profile) {
	var mode func(*profile.Profile)
	switch cfg.Mode {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	case "allocs":
		mode = profile.MemProfileAllocs
	case "heap":
		mode = profile.MemProfileHeap
	case "block":
		mode = profile.BlockProfile
	case "trace":
		mode = profile.TraceProfile
	default:
		return nil
	}
	return []func(*profile.Profile){
		mode,
		profile.ProfilePath(cfg.Path),
		profile.NoShutdownHook,
		profile.Quiet,
	}
}
