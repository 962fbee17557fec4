// Package spectate serves a running game to read-only viewers: JSON snapshots,
// a PNG of the board, a websocket frame stream and Prometheus metrics.
package spectate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/theme"
)

// Server is the game-side entry point. Publish and ObserveSound are called on
// the game goroutine and never block on viewers.
type Server struct {
	Hub     *Hub
	Metrics *Metrics

	mu     sync.RWMutex
	latest engine.State
	has    bool

	http *http.Server
}

// NewServer prepares a server listening on addr.
func NewServer(addr string, palette theme.Palette) *Server {
	s := &Server{Metrics: NewMetrics()}
	s.Hub = NewHub(NewAdmission(DefaultAdmission), s.Metrics)
	s.http = &http.Server{
		Addr: addr,
		Handler: NewRouter(RouterConfig{
			Source:  s,
			Hub:     s.Hub,
			Metrics: s.Metrics,
			Palette: palette,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Publish records s as the latest snapshot and forwards it to viewers.
func (s *Server) Publish(st engine.State) {
	s.mu.Lock()
	s.latest = st
	s.has = true
	s.mu.Unlock()

	s.Metrics.ObserveState(st)
	s.Hub.Publish(st)
}

// ObserveSound feeds a cue into the metrics.
func (s *Server) ObserveSound(ev engine.Sound) {
	s.Metrics.ObserveSound(ev)
}

func (s *Server) Latest() (engine.State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.has
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		log.Printf("spectate: listening on %s", s.http.Addr)
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("spectate: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Hub.Close()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("spectate: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("spectate: %w", err)
	}
	return nil
}
