package discord

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/dkeye/Rooms/internal/app"
	"github.com/dkeye/Rooms/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	errNotCommand = errors.New("interaction is not an application command")
	errNotInGuild = errors.New("command used outside a guild")
)

const (
	replyNotInGuild   = "⚠️ Este comando solo funciona dentro de un servidor."
	replyRateLimited  = "⏳ Vas demasiado rápido. Espera unos segundos e inténtalo de nuevo."
	replyInvalidInput = "⚠️ No se pudo leer el comando."
)

type interactionResponder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Handler turns gateway events into dispatcher and reconciler calls.
type Handler struct {
	ctx        context.Context
	responder  interactionResponder
	dispatcher *app.Dispatcher
	reconciler *app.Reconciler
	registrar  *Registrar
	limiter    *CommandRateLimiter
}

func NewHandler(
	ctx context.Context,
	responder interactionResponder,
	dispatcher *app.Dispatcher,
	reconciler *app.Reconciler,
	registrar *Registrar,
	limiter *CommandRateLimiter,
) *Handler {
	return &Handler{
		ctx:        ctx,
		responder:  responder,
		dispatcher: dispatcher,
		reconciler: reconciler,
		registrar:  registrar,
		limiter:    limiter,
	}
}

// Attach subscribes the handler to the session's events.
func (h *Handler) Attach(s *discordgo.Session) {
	s.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) { h.OnReady(r) })
	s.AddHandler(func(_ *discordgo.Session, g *discordgo.GuildCreate) { h.OnGuildCreate(g) })
	s.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) { h.OnInteraction(i) })
	s.AddHandler(func(_ *discordgo.Session, c *discordgo.ChannelDelete) { h.OnChannelDelete(c) })
}

func (h *Handler) OnReady(r *discordgo.Ready) {
	l := log.Info().Str("module", "adapters.discord").Int("guilds", len(r.Guilds))
	if r.User != nil {
		l = l.Str("user", r.User.String())
	}
	l.Msg("bot ready")
	_ = h.registrar.OnReady()
}

func (h *Handler) OnGuildCreate(g *discordgo.GuildCreate) {
	if g.Guild == nil {
		return
	}
	h.dispatcher.Registry.EnsureGuild(domain.GuildID(g.ID))
	log.Info().Str("module", "adapters.discord").Str("guild", g.ID).Str("name", g.Name).Msg("guild available")
	_ = h.registrar.OnGuildAvailable(g.ID)
}

func (h *Handler) OnChannelDelete(c *discordgo.ChannelDelete) {
	if c.Channel == nil || c.Type != discordgo.ChannelTypeGuildVoice {
		return
	}
	h.reconciler.ChannelDeleted(h.opContext(), domain.GuildID(c.GuildID), domain.ChannelID(c.ID))
}

func (h *Handler) OnInteraction(i *discordgo.InteractionCreate) {
	cmd, err := commandFromInteraction(i)
	switch {
	case errors.Is(err, errNotCommand):
		return
	case errors.Is(err, errNotInGuild):
		h.respond(i, replyNotInGuild)
		return
	case err != nil:
		log.Warn().Err(err).Str("module", "adapters.discord").Msg("malformed interaction")
		h.respond(i, replyInvalidInput)
		return
	}

	if !h.limiter.Allow(cmd.Actor.ID) {
		log.Debug().Str("module", "adapters.discord").Str("actor", string(cmd.Actor.ID)).Msg("rate limited")
		h.respond(i, replyRateLimited)
		return
	}

	// Acknowledge first: room creation can exceed the 3s response window.
	if err := h.responder.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		log.Error().Err(err).Str("module", "adapters.discord").Str("command", string(cmd.Name)).Msg("defer response failed")
		return
	}

	reply := h.dispatcher.Dispatch(h.opContext(), cmd)
	content := reply.Content
	if _, err := h.responder.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
		log.Error().Err(err).Str("module", "adapters.discord").Str("command", string(cmd.Name)).Msg("reply failed")
	}
}

// opContext is the context platform operations run under. Shutdown does not
// cancel it: a create or delete already issued runs to completion or failure.
func (h *Handler) opContext() context.Context {
	return context.WithoutCancel(h.ctx)
}

// respond sends an immediate private reply.
func (h *Handler) respond(i *discordgo.InteractionCreate, content string) {
	err := h.responder.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.discord").Msg("reply failed")
	}
}

func commandFromInteraction(i *discordgo.InteractionCreate) (app.Command, error) {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return app.Command{}, errNotCommand
	}
	if i.GuildID == "" || i.Member == nil || i.Member.User == nil {
		return app.Command{}, errNotInGuild
	}

	data := i.ApplicationCommandData()
	cmd := app.Command{
		Name:    app.CommandName(data.Name),
		GuildID: domain.GuildID(i.GuildID),
		Actor:   userOf(i.Member.User),
	}
	for _, opt := range data.Options {
		switch opt.Name {
		case optMax:
			v, ok := opt.Value.(float64)
			if !ok {
				return app.Command{}, errors.New("option max is not a number")
			}
			cmd.MaxMembers = int(v)
		case optName:
			v, _ := opt.Value.(string)
			cmd.RoomName = strings.TrimSpace(v)
		case optTarget:
			id, _ := opt.Value.(string)
			if id == "" {
				return app.Command{}, errors.New("option usuario is empty")
			}
			target := resolveUser(data.Resolved, id)
			cmd.Target = &target
		}
	}
	return cmd, nil
}

func resolveUser(resolved *discordgo.ApplicationCommandInteractionDataResolved, id string) domain.User {
	if resolved != nil {
		if u, ok := resolved.Users[id]; ok && u != nil {
			return userOf(u)
		}
	}
	return domain.User{ID: domain.UserID(id), Username: id, Tag: id}
}
