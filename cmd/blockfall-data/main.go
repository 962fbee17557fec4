// Command blockfall-data inspects and resets the records file the blockfall
// hosts share, and exports the sound cues as WAV files.
//
// Usage:
//
//	blockfall-data [flags] scores
//	blockfall-data [flags] achievements
//	blockfall-data [flags] reset records|achievements
//	blockfall-data [flags] sounds DIR [cue ...]
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/plus3/blockfall/achievement"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/locale"
	"github.com/plus3/blockfall/sound"
	"github.com/plus3/blockfall/store"
)

var errUsage = errors.New("usage: blockfall-data [flags] scores | achievements | reset records|achievements | sounds DIR [cue ...]")

func main() {
	cfg, err := config.Load("blockfall-data", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config, in io.Reader, out io.Writer) error {
	if len(cfg.Args) == 0 {
		return errUsage
	}
	cmd, args := cfg.Args[0], cfg.Args[1:]

	if cmd == "sounds" {
		if len(args) == 0 {
			return errUsage
		}
		return exportSounds(out, args[0], args[1:])
	}

	st, err := store.Open(cfg.DataPath)
	if err != nil {
		return err
	}
	lang := st.Locale()

	switch cmd {
	case "scores":
		return printScores(out, st)
	case "achievements":
		return printAchievements(out, st, lang)
	case "reset":
		if len(args) != 1 {
			return errUsage
		}
		return reset(in, out, st, lang, args[0])
	}
	return errUsage
}

func printScores(out io.Writer, st *store.Store) error {
	top := st.TopScores()
	if len(top) == 0 {
		_, err := fmt.Fprintln(out, "no finished games")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSCORE\tLEVEL\tLINES\tDATE")
	for i, e := range top {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\n", i+1, e.Score, e.Level, e.Lines, e.Date.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func printAchievements(out io.Writer, st *store.Store, lang locale.ID) error {
	unlocked := st.Unlocked()
	fmt.Fprintf(out, "%s: %s\n", locale.T(lang, "menu.achievements"),
		locale.Tf(lang, "menu.achievementsDesc", len(unlocked), len(achievement.Rules)))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, a := range achievement.Rules {
		mark := " "
		if slices.Contains(unlocked, a.ID) {
			mark = "x"
		}
		fmt.Fprintf(tw, "[%s]\t%s %s\t%s\n", mark, a.Icon, locale.T(lang, a.NameKey), locale.T(lang, a.DescKey))
	}
	return tw.Flush()
}

func reset(in io.Reader, out io.Writer, st *store.Store, lang locale.ID, what string) error {
	var key string
	var clear func()
	switch what {
	case "records":
		key, clear = "menu.resetRecords", st.ClearRecords
	case "achievements":
		key, clear = "menu.resetAchievements", st.ClearAchievements
	default:
		return errUsage
	}

	fmt.Fprintf(out, "%s. %s [y/N] ", locale.T(lang, key), locale.T(lang, "menu.resetConfirm"))
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "д", "да":
	default:
		fmt.Fprintln(out, "cancelled")
		return nil
	}

	clear()
	if err := st.Save(); err != nil {
		return err
	}
	fmt.Fprintln(out, "done")
	return nil
}

func exportSounds(out io.Writer, dir string, names []string) error {
	cues := engine.Sounds
	if len(names) > 0 {
		cues = make([]engine.Sound, 0, len(names))
		for _, name := range names {
			ev, err := engine.ParseSound(name)
			if err != nil {
				return err
			}
			cues = append(cues, ev)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, ev := range cues {
		path := filepath.Join(dir, ev.String()+".wav")
		if err := writeCue(path, ev); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%v\n", path, sound.Duration(ev))
	}
	return nil
}

func writeCue(path string, ev engine.Sound) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sound.WriteWAV(f, ev, sound.DefaultSampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
