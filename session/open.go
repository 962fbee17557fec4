package session

import (
	"fmt"
	"log"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/sound"
	"github.com/plus3/blockfall/spectate"
	"github.com/plus3/blockfall/store"
	"github.com/plus3/blockfall/theme"
)

// Open builds a session from resolved host settings. The spectator server is
// returned unstarted, and is nil unless cfg.SpectateAddr is set.
func Open(cfg config.Config, sink sound.Sink) (*Session, *spectate.Server, error) {
	st, err := store.Open(cfg.DataPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}

	opts := Options{Store: st, Sink: sink, Mute: cfg.Mute}
	if cfg.Seed != 0 {
		opts.EngineOptions = append(opts.EngineOptions, engine.WithSeed(cfg.Seed))
	}

	var server *spectate.Server
	if cfg.SpectateAddr != "" {
		server = spectate.NewServer(cfg.SpectateAddr, theme.Get(st.Theme()))
		opts.Publisher = server
	}

	log.Printf("records: %s", displayPath(st.Path()))
	return New(opts), server, nil
}

func displayPath(p string) string {
	if p == "" {
		return "in memory"
	}
	return p
}
