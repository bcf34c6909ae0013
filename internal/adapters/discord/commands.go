package discord

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/dkeye/Rooms/internal/app"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	optMax    = "max"
	optName   = "nombre"
	optTarget = "usuario"
)

// Commands returns the slash commands the bot declares.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        string(app.CmdCreateRoom),
			Description: "Crea una sala de voz privada",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        optMax,
					Description: "Cantidad máxima de miembros",
					Required:    true,
					MinValue:    lo.ToPtr(1.0),
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optName,
					Description: "Nombre del canal (opcional)",
					Required:    false,
				},
			},
		},
		{
			Name:        string(app.CmdInvite),
			Description: "Invita a un usuario a tu sala",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: optTarget, Description: "Usuario a invitar", Required: true},
			},
		},
		{
			Name:        string(app.CmdKick),
			Description: "Expulsa a un usuario de tu sala",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: optTarget, Description: "Usuario a expulsar", Required: true},
			},
		},
		{
			Name:        string(app.CmdListMembers),
			Description: "Lista los miembros actuales de tu sala",
		},
		{
			Name:        string(app.CmdCloseRoom),
			Description: "Cierra tu sala manualmente",
		},
	}
}

type commandOverwriter interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Registrar declares the commands according to the registration scope.
type Registrar struct {
	api     commandOverwriter
	appID   string
	scope   app.RegistrationScope
	guildID string

	mu   sync.Mutex
	done map[string]bool
}

func NewRegistrar(api commandOverwriter, appID string, scope app.RegistrationScope, guildID string) *Registrar {
	return &Registrar{
		api:     api,
		appID:   appID,
		scope:   scope,
		guildID: guildID,
		done:    make(map[string]bool),
	}
}

// OnReady handles the scopes that register once per connection.
func (r *Registrar) OnReady() error {
	switch r.scope {
	case app.ScopeGlobal:
		return r.register("")
	case app.ScopeEnv:
		return r.register(r.guildID)
	}
	return nil
}

// OnGuildAvailable registers in guildID under the per-guild scope.
// Discord emits GUILD_CREATE both at startup and when the bot joins a guild.
func (r *Registrar) OnGuildAvailable(guildID string) error {
	if r.scope != app.ScopePerGuild {
		return nil
	}
	return r.register(guildID)
}

// register is a no-op for a target that was already registered.
func (r *Registrar) register(guildID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done[guildID] {
		return nil
	}
	target := guildID
	if target == "" {
		target = "global"
	}
	if _, err := r.api.ApplicationCommandBulkOverwrite(r.appID, guildID, Commands()); err != nil {
		log.Error().Err(err).Str("module", "adapters.discord").Str("target", target).Msg("command registration failed")
		return fmt.Errorf("register commands (%s): %w", target, err)
	}
	r.done[guildID] = true
	log.Info().Str("module", "adapters.discord").Str("target", target).Msg("commands registered")
	return nil
}
