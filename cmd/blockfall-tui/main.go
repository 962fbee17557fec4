package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/session"
	"github.com/plus3/blockfall/sound"
	"github.com/plus3/blockfall/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load("blockfall-tui", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	// The terminal belongs to the game until it exits; replay the log afterwards.
	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer func() {
		log.SetOutput(os.Stderr)
		fmt.Fprint(os.Stderr, logs.String())
	}()

	var sink sound.Sink = sound.Nop{}
	if !cfg.Mute {
		speaker, err := sound.NewSpeaker(sound.DefaultSampleRate)
		if err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer speaker.Close()
			sink = speaker
		}
	}

	s, spectator, err := session.Open(cfg, sink)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if spectator != nil {
		go func() {
			if err := spectator.ListenAndServe(ctx); err != nil {
				log.Print(err)
			}
		}()
	}

	err = tui.New(screen, s).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
