package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"filme-catalog/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	clientIdleTTL  = 3 * time.Minute
	janitorPeriod  = time.Minute
	limitedMessage = "Muitas requisições. Tente novamente em instantes."
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	cfg     utils.RateLimitConfig
	log     *zap.Logger
	mu      sync.Mutex
	clients map[string]*client
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewRateLimiter starts a janitor goroutine that drops idle clients until
// Stop is called.
func NewRateLimiter(cfg utils.RateLimitConfig, log *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:     cfg,
		log:     log.With(zap.String("middleware", "ratelimit")),
		clients: make(map[string]*client),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if cfg.Enabled {
		go rl.janitor()
	}
	return rl
}

// Stop ends the janitor goroutine.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) janitor() {
	ticker := time.NewTicker(janitorPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, c := range rl.clients {
		if rl.now().Sub(c.lastSeen) > clientIdleTTL {
			delete(rl.clients, ip)
		}
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = rl.now()

	return c.limiter.AllowN(c.lastSeen, 1)
}

// Handler rejects requests over the limit with 429.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.allow(ip) {
			rl.log.Warn("Rate limit exceeded",
				zap.String("ip", ip),
				zap.String("path", r.URL.Path),
			)
			utils.ResponseTooManyRequests(w, limitedMessage)
			return
		}

		next.ServeHTTP(w, r)
	})
}
