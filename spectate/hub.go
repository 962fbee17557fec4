package spectate

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/plus3/blockfall/engine"
)

const (
	// MaxViewers caps concurrent websocket viewers.
	MaxViewers = 64

	sendBuffer   = 8
	writeTimeout = 5 * time.Second
)

type viewer struct {
	conn *websocket.Conn
	send chan []byte
	ip   string
}

// Hub fans snapshot frames out to websocket viewers. Publish never blocks: a
// viewer whose buffer is full misses frames until it catches up.
type Hub struct {
	mu      sync.Mutex
	viewers map[*viewer]struct{}
	last    []byte

	admission *Admission
	metrics   *Metrics
	upgrader  websocket.Upgrader
}

// NewHub builds a hub. admission and metrics may be nil.
func NewHub(admission *Admission, metrics *Metrics) *Hub {
	return &Hub{
		viewers:   make(map[*viewer]struct{}),
		admission: admission,
		metrics:   metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  512,
			WriteBufferSize: 4096,
			// Viewers are read-only; any origin may watch.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Publish encodes s and queues it for every viewer.
func (h *Hub) Publish(s engine.State) {
	data, err := json.Marshal(FrameFrom(s))
	if err != nil {
		log.Printf("spectate: encoding frame: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = data
	for v := range h.viewers {
		select {
		case v.send <- data:
			h.observeFrame(true)
		default:
			h.observeFrame(false)
		}
	}
}

func (h *Hub) observeFrame(delivered bool) {
	if h.metrics != nil {
		h.metrics.frame(delivered)
	}
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	if h.admission != nil && !h.admission.Allow(ip) {
		http.Error(w, "too many connection attempts", http.StatusTooManyRequests)
		return
	}
	if h.Viewers() >= MaxViewers {
		http.Error(w, "too many viewers", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		return
	}

	v := &viewer{conn: conn, send: make(chan []byte, sendBuffer), ip: ip}
	h.register(v)
	go h.writeLoop(v)
	h.readLoop(v)
}

func (h *Hub) register(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewers[v] = struct{}{}
	if h.last != nil {
		v.send <- h.last
	}
	h.updateViewers()
	log.Printf("spectate: viewer %s connected (%d watching)", v.ip, len(h.viewers))
}

func (h *Hub) unregister(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.viewers[v]; !ok {
		return
	}
	delete(h.viewers, v)
	close(v.send)
	h.updateViewers()
	log.Printf("spectate: viewer %s left (%d watching)", v.ip, len(h.viewers))
}

func (h *Hub) updateViewers() {
	if h.metrics != nil {
		h.metrics.setSpectators(len(h.viewers))
	}
}

// readLoop discards viewer messages and returns once the connection fails.
func (h *Hub) readLoop(v *viewer) {
	defer h.unregister(v)
	v.conn.SetReadLimit(512)
	for {
		if _, _, err := v.conn.NextReader(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(v *viewer) {
	defer v.conn.Close()
	for msg := range v.send {
		v.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := v.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	v.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	v.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for v := range h.viewers {
		delete(h.viewers, v)
		close(v.send)
	}
	h.updateViewers()
}
