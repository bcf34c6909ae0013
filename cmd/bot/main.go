package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Rooms/internal/adapters/discord"
	router "github.com/dkeye/Rooms/internal/adapters/http"
	"github.com/dkeye/Rooms/internal/app"
	"github.com/dkeye/Rooms/internal/config"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("bot exited with error")
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	scope, err := app.ParseRegistrationScope(cfg.RegistrationScope)
	if err != nil {
		return err
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers
	session.State.TrackMembers = true
	session.State.TrackRoles = true

	clk := clockwork.NewRealClock()
	policy := app.RoomPolicy{
		ReuseRole:       cfg.RoleReuse,
		DefaultCapacity: cfg.DefaultCapacity,
		TTL:             cfg.RoomTTL,
	}

	platform := discord.NewPlatform(session).WithMemberCache(session.State)
	reg := app.NewRegistry()
	dispatcher := app.NewDispatcher(reg, platform, policy, clk)
	sweeper := app.NewSweeper(reg, platform, policy, cfg.SweepInterval, clk)
	reconciler := app.NewReconciler(reg, platform)
	registrar := discord.NewRegistrar(session, cfg.ClientID, scope, cfg.GuildID)
	limiter := discord.NewCommandRateLimiter(cfg.RateLimit, cfg.RateWindow, clk)

	handler := discord.NewHandler(ctx, session, dispatcher, reconciler, registrar, limiter)
	handler.Attach(session)

	if err := session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Error().Err(err).Msg("gateway close failed")
		}
	}()

	go sweeper.Run(ctx)

	var srv *http.Server
	if cfg.Admin.Enabled {
		addr := cfg.Admin.Addr()
		srv = &http.Server{
			Addr:    addr,
			Handler: router.SetupRouter(ctx, cfg, reg, sweeper),
		}
		go func() {
			log.Info().Str("addr", addr).Msg("admin server started")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("admin server error")
			}
		}()
	}

	log.Info().Str("scope", string(scope)).Bool("role_reuse", policy.ReuseRole).Msg("Rooms bot running")
	<-ctx.Done()
	log.Info().Msg("Shutting down")

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}
	}
	log.Info().Msg("Bot exited gracefully")
	return nil
}
