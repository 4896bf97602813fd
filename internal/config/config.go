// Package config carga la configuración desde env y un .env opcional usando Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port string `mapstructure:"PORT"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	AppName   string `mapstructure:"APP_NAME"`

	// Fuente de datos: CAMPUS_API_URL tiene prioridad sobre DB_DSN.
	// Si ninguna está, se usan datos demo en memoria.
	CampusAPIURL       string `mapstructure:"CAMPUS_API_URL"`
	CampusAPIKey       string `mapstructure:"CAMPUS_API_KEY"`
	CampusAPIKeyHeader string `mapstructure:"CAMPUS_API_KEY_HEADER"`
	CampusAPITimeout   string `mapstructure:"CAMPUS_API_TIMEOUT"`
	DBDSN              string `mapstructure:"DB_DSN"`

	// JWT_SECRET vacío => modo dev (headers X-Debug-*).
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	JWTIssuer   string `mapstructure:"JWT_ISSUER"`
	JWTAudience string `mapstructure:"JWT_AUDIENCE"`

	HTTPReadTimeout  string `mapstructure:"HTTP_READ_TIMEOUT"`
	HTTPWriteTimeout string `mapstructure:"HTTP_WRITE_TIMEOUT"`
}

type SourceKind string

const (
	SourceCampusAPI SourceKind = "campus-api"
	SourcePostgres  SourceKind = "postgres"
	SourceDemo      SourceKind = "demo"
)

// Load lee .env (si existe) y después el entorno. El entorno pisa al .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // sin .env está bien (CI, contenedores)

	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "campus-dashboard")
	v.SetDefault("CAMPUS_API_URL", "")
	v.SetDefault("CAMPUS_API_KEY", "")
	v.SetDefault("CAMPUS_API_KEY_HEADER", "X-Api-Key")
	v.SetDefault("CAMPUS_API_TIMEOUT", "10s")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("JWT_AUDIENCE", "")
	v.SetDefault("HTTP_READ_TIMEOUT", "5s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "10s")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Port = strings.TrimPrefix(strings.TrimSpace(cfg.Port), ":")
	if cfg.Port == "" {
		return nil, errors.New("config: PORT must be set")
	}
	if _, err := time.ParseDuration(cfg.CampusAPITimeout); err != nil {
		return nil, errors.New("config: CAMPUS_API_TIMEOUT must be a duration (e.g. 10s)")
	}

	return &cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) Source() SourceKind {
	switch {
	case strings.TrimSpace(c.CampusAPIURL) != "":
		return SourceCampusAPI
	case strings.TrimSpace(c.DBDSN) != "":
		return SourcePostgres
	default:
		return SourceDemo
	}
}

func (c *Config) AuthEnabled() bool {
	return strings.TrimSpace(c.JWTSecret) != ""
}

// APITimeout devuelve 10s si el valor no es válido.
func (c *Config) APITimeout() time.Duration {
	return durationOr(c.CampusAPITimeout, 10*time.Second)
}

func (c *Config) ReadTimeout() time.Duration {
	return durationOr(c.HTTPReadTimeout, 5*time.Second)
}

func (c *Config) WriteTimeout() time.Duration {
	return durationOr(c.HTTPWriteTimeout, 10*time.Second)
}

func durationOr(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
