package http

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/dkeye/Rooms/internal/app"
	"github.com/dkeye/Rooms/internal/config"
	"github.com/dkeye/Rooms/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const requestIDHeader = "X-Request-ID"

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// BearerAuth guards a group with a static token. An empty token disables the check.
func BearerAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// SetupRouter exposes read-only room state plus a manual sweep trigger.
func SetupRouter(ctx context.Context, cfg *config.Config, reg *app.Registry, sweeper *app.Sweeper) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "rooms": reg.Len()})
	})

	log.Info().Str("module", "adapters.http").Bool("auth", cfg.Admin.Token != "").Msg("router setup")

	api := r.Group("/api", BearerAuth(cfg.Admin.Token))

	// GET /api/rooms: every tracked room
	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": reg.Snapshot()})
	})

	// GET /api/guilds/:guild/rooms
	api.GET("/guilds/:guild/rooms", func(c *gin.Context) {
		guildID := domain.GuildID(c.Param("guild"))
		rooms := lo.Filter(reg.Snapshot(), func(room domain.Room, _ int) bool { return room.GuildID == guildID })
		c.JSON(http.StatusOK, gin.H{"rooms": rooms})
	})

	// POST /api/sweep runs an expiry pass now
	api.POST("/sweep", func(c *gin.Context) {
		stats := sweeper.Sweep(ctx)
		log.Info().Str("module", "adapters.http").Str("request_id", c.GetString("request_id")).Msg("manual sweep")
		c.JSON(http.StatusOK, stats)
	})

	return r
}
