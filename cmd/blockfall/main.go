package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/gui"
	"github.com/plus3/blockfall/session"
	"github.com/plus3/blockfall/sound"
)

func main() {
	cfg, err := config.Load("blockfall", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	var sink sound.Sink = sound.Nop{}
	if !cfg.Mute {
		sink = gui.NewAudio(sound.DefaultSampleRate)
	}

	s, spectator, err := session.Open(cfg, sink)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if spectator != nil {
		go func() {
			if err := spectator.ListenAndServe(ctx); err != nil {
				log.Print(err)
			}
		}()
	}

	game := gui.NewGame(s)
	if cfg.Debug {
		game.EnableDebug(1280, 720)
	}
	if err := gui.Run(game, cfg.Scale); err != nil {
		log.Fatal(err)
	}
}
