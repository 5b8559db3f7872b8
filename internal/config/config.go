package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the app reads from the environment.
// A .env file is applied by main (godotenv) before Load is called.
type Config struct {
	Addr          string `envconfig:"ADDR" default:":8080"`
	DatabaseURL   string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret     string `envconfig:"JWT_SECRET" required:"true"`
	MigrationsDir string `envconfig:"MIGRATIONS_DIR" default:"./migrations"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("store", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
