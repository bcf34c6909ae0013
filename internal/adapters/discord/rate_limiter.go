package discord

import (
	"sync"
	"time"

	"github.com/dkeye/Rooms/internal/domain"
	"github.com/jonboulle/clockwork"
)

// CommandRateLimiter is a sliding-window limiter keyed by actor.
type CommandRateLimiter struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	history  map[domain.UserID][]time.Time
	limit    int
	interval time.Duration
}

// NewCommandRateLimiter returns nil when limit is not positive; a nil
// limiter allows everything.
func NewCommandRateLimiter(limit int, interval time.Duration, clk clockwork.Clock) *CommandRateLimiter {
	if limit <= 0 || interval <= 0 {
		return nil
	}
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &CommandRateLimiter{
		clock:    clk,
		history:  make(map[domain.UserID][]time.Time),
		limit:    limit,
		interval: interval,
	}
}

func (rl *CommandRateLimiter) Allow(uid domain.UserID) bool {
	if rl == nil {
		return true
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	windowStart := now.Add(-rl.interval)

	attempts := rl.history[uid]
	fresh := make([]time.Time, 0, len(attempts)+1)
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= rl.limit {
		rl.history[uid] = fresh
		return false
	}

	rl.history[uid] = append(fresh, now)
	return true
}
