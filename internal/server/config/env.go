package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is an intermediate DTO for environment variables. All fields are
// strings so that unset variables can be told apart from explicit values.
type envConfig struct {
	EndpointAddr  string `env:"ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URL"`
	SecretKey     string `env:"AUTH_SECRET"`
	TokenValidity string `env:"TOKEN_VALIDITY"`
	AllowedOrigin string `env:"FRONTEND_URL"`
	Environment   string `env:"ENVIRONMENT"`
}

// parseEnv overlays environment variables onto config. Only variables that
// are actually set override earlier layers. TOKEN_VALIDITY accepts
// time.ParseDuration syntax ("24h", "90m").
func parseEnv(config *Config) {
	e := envConfig{}
	if err := env.Parse(&e); err != nil {
		panic(err)
	}

	if e.EndpointAddr != "" {
		config.EndpointAddr = e.EndpointAddr
	}
	if e.DatabaseDSN != "" {
		config.DatabaseDSN = e.DatabaseDSN
	}
	if e.SecretKey != "" {
		config.SecretKey = e.SecretKey
	}
	if e.TokenValidity != "" {
		d, err := time.ParseDuration(e.TokenValidity)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = d
	}
	if e.AllowedOrigin != "" {
		config.AllowedOrigin = e.AllowedOrigin
	}
	if e.Environment != "" {
		config.Environment = e.Environment
	}
}
