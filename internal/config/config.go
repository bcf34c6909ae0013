package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode     string `mapstructure:"mode" validate:"oneof=debug release test"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`

	Token    string `mapstructure:"token" validate:"required"`
	ClientID string `mapstructure:"client_id" validate:"required"`
	// GuildID scopes command registration when the scope is env-configured.
	GuildID string `mapstructure:"guild_id"`

	RegistrationScope string        `mapstructure:"registration_scope" validate:"oneof=per-guild global env-configured"`
	RoleReuse         bool          `mapstructure:"role_reuse"`
	DefaultCapacity   int           `mapstructure:"default_capacity" validate:"min=1"`
	RoomTTL           time.Duration `mapstructure:"room_ttl" validate:"gt=0"`
	SweepInterval     time.Duration `mapstructure:"sweep_interval" validate:"gt=0"`

	// Commands per actor allowed within RateWindow; 0 disables limiting.
	RateLimit  int           `mapstructure:"rate_limit" validate:"min=0"`
	RateWindow time.Duration `mapstructure:"rate_window"`

	Admin Admin `mapstructure:"admin"`
}

type Admin struct {
	Enabled bool `mapstructure:"enabled"`
	// Host defaults to loopback; set it to 0.0.0.0 only together with a Token.
	Host  string `mapstructure:"host" validate:"required"`
	Port  int    `mapstructure:"port" validate:"min=1,max=65535"`
	Token string `mapstructure:"token"`
}

// Addr is the listen address of the admin server.
func (a Admin) Addr() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

var envKeys = map[string][]string{
	"token":              {"TOKEN", "DISCORD_TOKEN"},
	"client_id":          {"CLIENT_ID"},
	"guild_id":           {"GUILD_ID"},
	"registration_scope": {"REGISTRATION_SCOPE"},
	"role_reuse":         {"ROLE_REUSE"},
	"default_capacity":   {"DEFAULT_CAPACITY"},
	"room_ttl":           {"ROOM_TTL"},
	"sweep_interval":     {"SWEEP_INTERVAL"},
	"rate_limit":         {"RATE_LIMIT"},
	"rate_window":        {"RATE_WINDOW"},
	"log_level":          {"LOG_LEVEL"},
	"mode":               {"MODE"},
	"admin.enabled":      {"ADMIN_ENABLED"},
	"admin.host":         {"ADMIN_HOST"},
	"admin.port":         {"ADMIN_PORT", "PORT"},
	"admin.token":        {"ADMIN_TOKEN"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("registration_scope", "per-guild")
	v.SetDefault("role_reuse", true)
	v.SetDefault("default_capacity", 5)
	v.SetDefault("room_ttl", "720h")
	v.SetDefault("sweep_interval", "1h")
	v.SetDefault("rate_limit", 5)
	v.SetDefault("rate_window", "10s")
	v.SetDefault("admin.enabled", true)
	v.SetDefault("admin.host", "127.0.0.1")
	v.SetDefault("admin.port", 8080)
	v.SetDefault("admin.token", "")
	v.SetDefault("guild_id", "")
}

// Load reads .env (if present), then config/config.<CONFIG_ENV>.yaml (if
// present), then the environment. Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

// LoadFile is Load without the .env step, reading the given YAML file.
func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)
	setDefaults(v)

	for key, names := range envKeys {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults and environment")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.RegistrationScope = strings.ToLower(strings.TrimSpace(cfg.RegistrationScope))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log.Info().
		Str("module", "config").
		Str("mode", cfg.Mode).
		Str("scope", cfg.RegistrationScope).
		Bool("role_reuse", cfg.RoleReuse).
		Dur("room_ttl", cfg.RoomTTL).
		Bool("admin", cfg.Admin.Enabled).
		Str("admin_addr", cfg.Admin.Addr()).
		Msg("config ready")
	return &cfg, nil
}
