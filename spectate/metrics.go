package spectate

import (
	"net/http"
	"strconv"

	"github.com/plus3/blockfall/engine"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics derives game counters from the cue stream and snapshot gauges. It
// uses its own registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	gamesStarted prometheus.Counter
	gamesOver    prometheus.Counter
	piecesLocked prometheus.Counter
	clears       *prometheus.CounterVec
	levelUps     prometheus.Counter
	score        prometheus.Gauge
	level        prometheus.Gauge
	spectators   prometheus.Gauge
	framesSent   prometheus.Counter
	framesDrop   prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		gamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blockfall_games_started_total",
			Help: "Games started or restarted",
		}),
		gamesOver: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blockfall_games_over_total",
			Help: "Games that ended by topping out",
		}),
		piecesLocked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blockfall_pieces_locked_total",
			Help: "Pieces merged into the grid",
		}),
		clears: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blockfall_line_clears_total",
			Help: "Line clears by number of rows removed at once",
		}, []string{"rows"}),
		levelUps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blockfall_level_ups_total",
			Help: "Level increases",
		}),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "blockfall_score",
			Help: "Score of the game in progress",
		}),
		level: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "blockfall_level",
			Help: "Level of the game in progress",
		}),
		spectators: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "blockfall_spectators",
			Help: "Connected spectator websockets",
		}),
		framesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blockfall_spectate_frames_total",
			Help: "Frames queued to spectators",
		}),
		framesDrop: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blockfall_spectate_frames_dropped_total",
			Help: "Frames skipped because a spectator fell behind",
		}),
	}
	m.registry.MustRegister(
		m.gamesStarted, m.gamesOver, m.piecesLocked, m.clears, m.levelUps,
		m.score, m.level, m.spectators, m.framesSent, m.framesDrop,
	)
	return m
}

// ObserveSound counts game events from their cues.
func (m *Metrics) ObserveSound(ev engine.Sound) {
	switch ev {
	case engine.SoundStart:
		m.gamesStarted.Inc()
	case engine.SoundGameOver:
		m.gamesOver.Inc()
	case engine.SoundDrop, engine.SoundHardDrop:
		m.piecesLocked.Inc()
	case engine.SoundLevelUp:
		m.levelUps.Inc()
	case engine.SoundLineClear1, engine.SoundLineClear2, engine.SoundLineClear3, engine.SoundLineClear4:
		m.clears.WithLabelValues(strconv.Itoa(int(ev-engine.SoundLineClear1) + 1)).Inc()
	}
}

// ObserveState updates the gauges from a snapshot.
func (m *Metrics) ObserveState(s engine.State) {
	m.score.Set(float64(s.Score))
	m.level.Set(float64(s.Level))
}

func (m *Metrics) setSpectators(n int) {
	m.spectators.Set(float64(n))
}

func (m *Metrics) frame(delivered bool) {
	if delivered {
		m.framesSent.Inc()
	} else {
		m.framesDrop.Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
