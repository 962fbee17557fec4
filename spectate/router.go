package spectate

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/theme"
)

// Source provides the most recent snapshot, if any.
type Source interface {
	Latest() (engine.State, bool)
}

// RouterConfig holds the router's dependencies. Hub and Metrics may be nil,
// which leaves their routes unmounted.
type RouterConfig struct {
	Source  Source
	Hub     *Hub
	Metrics *Metrics
	Palette theme.Palette
	// CORSOrigins defaults to any origin.
	CORSOrigins []string
	// DefaultCell is the board.png cell size when the request names none.
	DefaultCell int
}

// NewRouter builds the HTTP API. It starts no goroutines.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	if cfg.DefaultCell <= 0 {
		cfg.DefaultCell = 24
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/state", func(w http.ResponseWriter, _ *http.Request) {
		s, ok := cfg.Source.Latest()
		if !ok {
			http.Error(w, "no game yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(FrameFrom(s)); err != nil {
			log.Printf("spectate: writing state: %v", err)
		}
	})
	r.Get("/board.png", func(w http.ResponseWriter, req *http.Request) {
		s, ok := cfg.Source.Latest()
		if !ok {
			http.Error(w, "no game yet", http.StatusServiceUnavailable)
			return
		}
		cell := cfg.DefaultCell
		if v := req.URL.Query().Get("cell"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 128 {
				http.Error(w, "cell must be between 1 and 128", http.StatusBadRequest)
				return
			}
			cell = n
		}
		w.Header().Set("Content-Type", "image/png")
		if err := RenderPNG(w, s, cfg.Palette, cell); err != nil {
			log.Printf("spectate: writing board: %v", err)
		}
	})
	if cfg.Hub != nil {
		r.Handle("/ws", cfg.Hub)
	}
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}
	return r
}
