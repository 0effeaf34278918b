package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type RateLimit struct {
	Count    int           `mapstructure:"count"`
	Interval time.Duration `mapstructure:"interval"`
}

type Rooms struct {
	GlobalBroadcast bool `mapstructure:"global_broadcast"`
	NotifyPeerLeft  bool `mapstructure:"notify_peer_left"`
	ClientLog       bool `mapstructure:"client_log"`
}

type IPAddr struct {
	Exclude []string `mapstructure:"exclude"`
}

type Policy struct {
	SlowConsumer string `mapstructure:"slow_consumer"`
}

type ICE struct {
	URLs       []string `mapstructure:"urls"`
	Username   string   `mapstructure:"username"`
	Credential string   `mapstructure:"credential"`
}

type Config struct {
	Mode       string        `mapstructure:"mode"`
	LogLevel   string        `mapstructure:"log_level"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	Secret     string        `mapstructure:"secret"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	SendBuffer int           `mapstructure:"send_buffer"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	PongWait   time.Duration `mapstructure:"pong_wait"`
	WriteWait  time.Duration `mapstructure:"write_wait"`
	RateLimit  RateLimit     `mapstructure:"rate_limit"`
	Rooms      Rooms         `mapstructure:"rooms"`
	IPAddr     IPAddr        `mapstructure:"ipaddr"`
	Policy     Policy        `mapstructure:"policy"`
	ICE        ICE           `mapstructure:"ice"`
}

// DefaultSTUN is handed to clients when no ICE server is configured.
const DefaultSTUN = "stun:stun.l.google.com:19302"

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("port", 3030)
	v.SetDefault("static_path", "./web")
	v.SetDefault("secret", "rendezvous-dev-secret")
	v.SetDefault("read_limit", 65536)
	v.SetDefault("send_buffer", 64)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("pong_wait", "60s")
	v.SetDefault("write_wait", "5s")
	v.SetDefault("rate_limit.count", 100)
	v.SetDefault("rate_limit.interval", "1s")
	v.SetDefault("rooms.global_broadcast", true)
	v.SetDefault("rooms.notify_peer_left", false)
	v.SetDefault("rooms.client_log", false)
	v.SetDefault("ipaddr.exclude", []string{})
	v.SetDefault("policy.slow_consumer", "drop")
	v.SetDefault("ice.urls", []string{DefaultSTUN})
}

// Load reads config/config.<CONFIG_ENV>.yaml on top of the defaults.
// RENDEZVOUS_* variables override file values and PORT overrides the port.
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	setDefaults(v)

	v.SetEnvPrefix("RENDEZVOUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", "PORT"); err != nil {
		return nil, fmt.Errorf("bind PORT: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log.Info().
		Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Str("static", cfg.StaticPath).
		Msg("config ready")
	return &cfg, nil
}

var ErrInvalidPort = errors.New("invalid port")

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = 64
	}
	if c.RateLimit.Count <= 0 {
		c.RateLimit.Count = 100
	}
	if c.RateLimit.Interval <= 0 {
		c.RateLimit.Interval = time.Second
	}
	if c.PongWait <= c.PingPeriod {
		c.PongWait = c.PingPeriod + c.PingPeriod/9
	}
	return nil
}
