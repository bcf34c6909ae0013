package app

import (
	"context"
	"time"

	"github.com/dkeye/Rooms/internal/core"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// SweepStats summarizes one pass.
type SweepStats struct {
	Scanned int `json:"scanned"`
	Stale   int `json:"stale"`
	Expired int `json:"expired"`
	Skipped int `json:"skipped"`
}

// Sweeper expires rooms older than the policy TTL and drops entries whose
// channel vanished. A pass is not transactional; the next one simply
// re-evaluates every room.
type Sweeper struct {
	Registry *Registry
	Platform core.Platform
	Clock    clockwork.Clock
	TTL      time.Duration
	Interval time.Duration
}

func NewSweeper(reg *Registry, p core.Platform, policy RoomPolicy, interval time.Duration, clk clockwork.Clock) *Sweeper {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{Registry: reg, Platform: p, Clock: clk, TTL: policy.ttl(), Interval: interval}
}

// Run sweeps once per Interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := s.Clock.NewTicker(s.Interval)
	defer ticker.Stop()
	log.Info().Str("module", "app.sweeper").Dur("interval", s.Interval).Dur("ttl", s.TTL).Msg("sweeper started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.sweeper").Msg("sweeper stopped")
			return
		case <-ticker.Chan():
			s.Sweep(ctx)
		}
	}
}

func (s *Sweeper) Sweep(ctx context.Context) SweepStats {
	var stats SweepStats
	now := s.Clock.Now()
	for _, room := range s.Registry.Snapshot() {
		stats.Scanned++
		logger := log.With().
			Str("module", "app.sweeper").
			Str("guild", string(room.GuildID)).
			Str("channel", string(room.ChannelID)).
			Logger()

		exists, err := s.Platform.ChannelExists(ctx, room.GuildID, room.ChannelID)
		if err != nil {
			stats.Skipped++
			logger.Warn().Err(err).Msg("channel lookup failed, retrying next pass")
			continue
		}
		if !exists {
			// The role is left alone: whoever removed the channel owns that cleanup.
			if s.Registry.Remove(room.GuildID, room.ChannelID) {
				stats.Stale++
				logger.Info().Msg("stale room dropped")
			}
			continue
		}
		if !room.Expired(now, s.TTL) {
			continue
		}
		if _, ok := s.Registry.Get(room.GuildID, room.ChannelID); !ok {
			continue
		}
		role, channel := teardown(ctx, s.Platform, s.Registry, room)
		stats.Expired++
		logger.Info().
			Dur("age", room.Age(now)).
			Str("role_result", role.String()).
			Str("channel_result", channel.String()).
			Msg("room expired")
	}
	if stats.Scanned > 0 {
		log.Info().
			Str("module", "app.sweeper").
			Int("scanned", stats.Scanned).
			Int("stale", stats.Stale).
			Int("expired", stats.Expired).
			Int("skipped", stats.Skipped).
			Msg("sweep done")
	}
	return stats
}
