package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the server-side settings of the WhatsApp sender service.
// Provider credentials are not part of it; users enter them in the UI.
type Config struct {
	ServerPort int    `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	LogFormat  string `mapstructure:"LOG_FORMAT"` // json or text

	// Provider selects the outbound adapter: "twilio" or "mock".
	Provider string `mapstructure:"PROVIDER"`

	SessionTTLMinutes      int      `mapstructure:"SESSION_TTL_MINUTES"`
	CORSAllowedOrigins     []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	MetricsEnabled         bool     `mapstructure:"METRICS_ENABLED"`
	ShutdownTimeoutSeconds int      `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// SessionTTL is the idle lifetime of a credentials session.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// ShutdownTimeout bounds the graceful HTTP shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// Load reads config.defaults.yaml (optional), a .env file (optional) and APP_* environment variables, in increasing precedence.
func Load(serviceName string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("%s: no .env file found, relying on system env vars", serviceName)
	}

	v := viper.New()
	v.SetConfigName("config.defaults")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("APP") // APP_SERVER_PORT, APP_LOG_LEVEL etc.

	// Every key needs a default, otherwise Unmarshal never looks it up in the environment.
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("PROVIDER", "twilio")
	v.SetDefault("SESSION_TTL_MINUTES", 30)
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 15)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Printf("%s: configuration file 'config.defaults.yaml' not found; using defaults and environment variables.", serviceName)
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Provider) {
	case "twilio", "mock":
		c.Provider = strings.ToLower(c.Provider)
	default:
		return errors.New("config: PROVIDER must be one of twilio, mock")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return errors.New("config: SERVER_PORT out of range")
	}
	if c.SessionTTLMinutes <= 0 {
		return errors.New("config: SESSION_TTL_MINUTES must be positive")
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		c.ShutdownTimeoutSeconds = 15
	}
	return nil
}
