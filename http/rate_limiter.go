package http

import (
	"math"
	"sync"
	"time"
)

const (
	idleClientTTL   = 1 * time.Hour
	cleanupInterval = 30 * time.Minute
)

// Cost units charged per request.
const (
	CostLight  = 1
	CostReport = 3
	CostPDF    = 5
)

type allowance struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter gives each client a budget of limit cost units per window that
// refills continuously.
type RateLimiter struct {
	mu       sync.Mutex
	limit    float64
	perSec   float64
	clients  map[string]*allowance
	done     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:   float64(max(limit, 1)),
		perSec:  float64(max(limit, 1)) / window.Seconds(),
		clients: make(map[string]*allowance),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go rl.sweep()
	return rl
}

func (r *RateLimiter) sweep() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.forgetIdle()
		case <-r.done:
			return
		}
	}
}

func (r *RateLimiter) forgetIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, a := range r.clients {
		if now.Sub(a.lastSeen) > idleClientTTL {
			delete(r.clients, client)
		}
	}
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// Take charges cost units to client. When the budget cannot cover it, nothing
// is charged and wait is how long until it can. Costs above the limit are
// charged as the full limit.
func (r *RateLimiter) Take(client string, cost int) (ok bool, wait time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	need := math.Min(float64(max(cost, 1)), r.limit)

	a, seen := r.clients[client]
	if !seen {
		a = &allowance{tokens: r.limit, lastSeen: now}
		r.clients[client] = a
	} else {
		elapsed := now.Sub(a.lastSeen).Seconds()
		a.tokens = math.Min(r.limit, a.tokens+elapsed*r.perSec)
		a.lastSeen = now
	}

	if a.tokens < need {
		missing := need - a.tokens
		return false, time.Duration(missing / r.perSec * float64(time.Second))
	}
	a.tokens -= need
	return true, 0
}
