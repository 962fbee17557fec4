// Package store persists records, unlocked achievements and preferences in a
// TOML file.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/plus3/blockfall/locale"
	"github.com/plus3/blockfall/theme"
)

// TopN is how many entries the top-score list keeps.
const TopN = 5

var (
	ErrUnknownTheme  = errors.New("unknown theme")
	ErrUnknownLocale = errors.New("unknown locale")
)

// Entry is one finished game on the top-score list.
type Entry struct {
	Score int       `toml:"score"`
	Date  time.Time `toml:"date"`
	Level int       `toml:"level"`
	Lines int       `toml:"lines"`
}

type records struct {
	Best int     `toml:"best"`
	Top  []Entry `toml:"top"`
}

type achievements struct {
	Unlocked []string `toml:"unlocked"`
}

type preferences struct {
	Sound  *bool  `toml:"sound"`
	Theme  string `toml:"theme"`
	Locale string `toml:"locale"`
}

type document struct {
	Records      records      `toml:"records"`
	Achievements achievements `toml:"achievements"`
	Preferences  preferences  `toml:"preferences"`
}

// Store is safe for concurrent use. An empty path keeps everything in memory.
type Store struct {
	mu   sync.RWMutex
	path string
	doc  document
}

// Open loads the file at path. A missing file yields defaults.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}

	if _, err := toml.DecodeFile(path, &s.doc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s.normalize()
	return s, nil
}

// Memory returns a store that is never written to disk.
func Memory() *Store {
	return &Store{}
}

func (s *Store) normalize() {
	top := s.doc.Records.Top
	slices.SortStableFunc(top, func(a, b Entry) int { return b.Score - a.Score })
	if len(top) > TopN {
		top = top[:TopN]
	}
	s.doc.Records.Top = top

	var ids []string
	for _, id := range s.doc.Achievements.Unlocked {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	s.doc.Achievements.Unlocked = ids
}

// Path returns the backing file, empty for memory stores.
func (s *Store) Path() string {
	return s.path
}

// Save writes the store atomically, creating parent directories as needed.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".blockfall-*.toml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(s.doc); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// HighScore returns the best score ever submitted.
func (s *Store) HighScore() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Records.Best
}

// SubmitScore records a finished game and reports whether it set a new best.
func (s *Store) SubmitScore(score, level, lines int, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	top := append(s.doc.Records.Top, Entry{Score: score, Date: at.UTC(), Level: level, Lines: lines})
	slices.SortStableFunc(top, func(a, b Entry) int { return b.Score - a.Score })
	if len(top) > TopN {
		top = top[:TopN]
	}
	s.doc.Records.Top = top

	if score > s.doc.Records.Best {
		s.doc.Records.Best = score
		return true
	}
	return false
}

// TopScores returns a copy of the top-score list, best first.
func (s *Store) TopScores() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.doc.Records.Top)
}

// ClearRecords forgets the best score and the top-score list.
func (s *Store) ClearRecords() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Records = records{}
}

// Unlock records an achievement id and reports whether it was new.
func (s *Store) Unlock(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.doc.Achievements.Unlocked, id) {
		return false
	}
	s.doc.Achievements.Unlocked = append(s.doc.Achievements.Unlocked, id)
	return true
}

// Unlocked returns the unlocked ids in unlock order.
func (s *Store) Unlocked() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.doc.Achievements.Unlocked)
}

// ClearAchievements forgets every unlocked achievement.
func (s *Store) ClearAchievements() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Achievements = achievements{}
}

// SoundEnabled defaults to true.
func (s *Store) SoundEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc.Preferences.Sound == nil {
		return true
	}
	return *s.doc.Preferences.Sound
}

func (s *Store) SetSoundEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Preferences.Sound = &enabled
}

// Theme returns the stored palette, or classic when unset or invalid.
func (s *Store) Theme() theme.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, err := theme.Parse(s.doc.Preferences.Theme)
	if err != nil {
		return theme.Classic
	}
	return id
}

func (s *Store) SetTheme(name string) error {
	id, err := theme.Parse(name)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Preferences.Theme = string(id)
	return nil
}

// Locale returns the stored language, or English when unset or invalid.
func (s *Store) Locale() locale.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, err := locale.Parse(s.doc.Preferences.Locale)
	if err != nil {
		return locale.English
	}
	return id
}

func (s *Store) SetLocale(code string) error {
	id, err := locale.Parse(code)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownLocale, code)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Preferences.Locale = string(id)
	return nil
}
