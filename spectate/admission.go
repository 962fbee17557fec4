package spectate

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// AdmissionConfig bounds how fast one address may open viewer connections.
type AdmissionConfig struct {
	PerSecond float64
	Burst     int
	// IdleAfter is how long an address goes unseen before its limiter is dropped.
	IdleAfter time.Duration
}

var DefaultAdmission = AdmissionConfig{
	PerSecond: 1,
	Burst:     5,
	IdleAfter: 10 * time.Minute,
}

type admissionEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Admission throttles new connections per remote address.
type Admission struct {
	mu      sync.Mutex
	cfg     AdmissionConfig
	entries map[string]*admissionEntry
	now     func() time.Time
}

func NewAdmission(cfg AdmissionConfig) *Admission {
	return &Admission{
		cfg:     cfg,
		entries: make(map[string]*admissionEntry),
		now:     time.Now,
	}
}

// Allow reports whether ip may connect now.
func (a *Admission) Allow(ip string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	a.sweep(now)

	e, ok := a.entries[ip]
	if !ok {
		e = &admissionEntry{limiter: rate.NewLimiter(rate.Limit(a.cfg.PerSecond), a.cfg.Burst)}
		a.entries[ip] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func (a *Admission) sweep(now time.Time) {
	if a.cfg.IdleAfter <= 0 {
		return
	}
	for ip, e := range a.entries {
		if now.Sub(e.lastSeen) > a.cfg.IdleAfter {
			delete(a.entries, ip)
		}
	}
}

// Tracked returns how many addresses currently hold a limiter.
func (a *Admission) Tracked() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
