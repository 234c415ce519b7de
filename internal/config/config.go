package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string    `yaml:"log-format" env:"LOG_FORMAT" env-default:"text"`
	HTTP      HTTP      `yaml:"http"`
	Redis     Redis     `yaml:"redis"`
	SQLite    SQLite    `yaml:"sqlite"`
	Telemetry Telemetry `yaml:"telemetry"`
	Game      Game      `yaml:"game"`
	Auth      Auth      `yaml:"auth"`
}

type HTTP struct {
	Addr            string        `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env-default:"5s"`
}

type Redis struct {
	Addr       string        `yaml:"addr" env:"REDIS_CONNSTRING" env-default:"localhost:6379"`
	SessionTTL time.Duration `yaml:"session-ttl" env-default:"1h"`
}

type SQLite struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"./master.db"`
}

type Telemetry struct {
	Enabled     bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	Endpoint    string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"otel-collector:4317"`
	ServiceName string `yaml:"service-name" env-default:"power-tic-tac-toe"`
	// Pretty additionally prints spans to stdout.
	Pretty bool `yaml:"pretty" env-default:"false"`
}

type Game struct {
	OpponentDelay  time.Duration `yaml:"opponent-delay" env-default:"500ms"`
	ReconnectGrace time.Duration `yaml:"reconnect-grace" env-default:"60s"`
	Heartbeat      time.Duration `yaml:"heartbeat" env-default:"10s"`
}

type Auth struct {
	JWTSecret string        `yaml:"jwt-secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token-ttl" env-default:"72h"`
}

// Load reads the YAML file at path, if any, and then the environment.
// Environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = cleanenv.ReadConfig(path, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	return cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
