package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// IP単位のレート制限（/login用）
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
	//最後のアクセスからこの時間が過ぎたIPは忘れる
	IdleTTL time.Duration
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	cfg       RateLimitConfig
	mu        sync.Mutex
	limiters  map[string]*ipLimiter
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	return &RateLimiter{
		cfg:      cfg,
		limiters: make(map[string]*ipLimiter),
		now:      time.Now,
	}
}

func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.allow(c.RealIP()) {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(rl.interval().Seconds())+1))
				return c.JSON(http.StatusTooManyRequests, errorJSON("too many requests"))
			}
			return next(c)
		}
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	l, ok := rl.limiters[ip]
	if !ok {
		l = &ipLimiter{limiter: rate.NewLimiter(rate.Every(rl.interval()), rl.cfg.Burst)}
		rl.limiters[ip] = l
	}
	l.lastSeen = now

	return l.limiter.AllowN(now, 1)
}

// 古いlimiterを掃除する（IdleTTLごとに1回）
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.cfg.IdleTTL {
		return
	}
	rl.lastSweep = now
	for ip, l := range rl.limiters {
		if now.Sub(l.lastSeen) > rl.cfg.IdleTTL {
			delete(rl.limiters, ip)
		}
	}
}

func (rl *RateLimiter) interval() time.Duration {
	return time.Minute / time.Duration(rl.cfg.RequestsPerMinute)
}
