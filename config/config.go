// Package config resolves host settings from defaults, an optional .env file,
// BLOCKFALL_* environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const envPrefix = "BLOCKFALL_"

type Config struct {
	// DataPath is the TOML file records and preferences live in. Empty keeps
	// them in memory.
	DataPath string
	// SpectateAddr enables the spectator server when non-empty.
	SpectateAddr string
	// Seed fixes the randomizer; zero picks a random seed.
	Seed  uint64
	Debug bool
	Scale int
	Mute  bool
	// Args holds the positional arguments left after the flags.
	Args []string
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		DataPath: defaultDataPath(),
		Scale:    2,
	}
}

func defaultDataPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "blockfall", "blockfall.toml")
}

// Load resolves the configuration for the program called name. args excludes
// the program name.
func Load(name string, args []string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.StringVar(&cfg.DataPath, "data", cfg.DataPath, "Path of the records and preferences file; empty keeps them in memory.")
	flags.StringVar(&cfg.SpectateAddr, "spectate", cfg.SpectateAddr, "Address to serve the spectator API on, e.g. :8080.")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Randomizer seed; 0 picks one at random.")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Show the debug overlay.")
	flags.IntVar(&cfg.Scale, "scale", cfg.Scale, "Window scale factor.")
	flags.BoolVar(&cfg.Mute, "mute", cfg.Mute, "Disable audio for this session.")
	if err := flags.Parse(args); err != nil {
		return cfg, err
	}
	cfg.Args = flags.Args()

	if cfg.Scale < 1 {
		return cfg, fmt.Errorf("scale must be at least 1, got %d", cfg.Scale)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(envPrefix + "DATA"); ok {
		c.DataPath = v
	}
	if v, ok := os.LookupEnv(envPrefix + "SPECTATE"); ok {
		c.SpectateAddr = v
	}
	if v, ok := os.LookupEnv(envPrefix + "SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", envPrefix, err)
		}
		c.Seed = seed
	}
	if v, ok := os.LookupEnv(envPrefix + "DEBUG"); ok {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDEBUG: %w", envPrefix, err)
		}
		c.Debug = debug
	}
	if v, ok := os.LookupEnv(envPrefix + "SCALE"); ok {
		scale, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sSCALE: %w", envPrefix, err)
		}
		c.Scale = scale
	}
	if v, ok := os.LookupEnv(envPrefix + "MUTE"); ok {
		mute, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sMUTE: %w", envPrefix, err)
		}
		c.Mute = mute
	}
	return nil
}
