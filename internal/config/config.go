// Package config loads the application configuration from defaults,
// command-line flags and the environment (including a .env file),
// and validates the result.
package config

import (
	"flag"
	"log"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the service.
type Config struct {
	RunAddr                 string        `env:"SERVER_ADDRESS" validate:"hostname_port"`
	ShortURLBase            string        `env:"BASE_URL" validate:"url"`
	LogLevel                string        `env:"LOG_LEVEL" validate:"loglevel"`
	SessionCookieName       string        `env:"SESSION_COOKIE_NAME" validate:"required"`
	SessionSigningSecretKey string        `env:"SESSION_SIGNING_SECRET_KEY" validate:"required,base64url"`
	SessionTTL              time.Duration `env:"SESSION_TTL"`
	BcryptCost              int           `env:"BCRYPT_COST"`
}

var defaultConfig = Config{
	RunAddr:           ":8080",
	ShortURLBase:      "http://localhost:8080",
	LogLevel:          "info",
	SessionCookieName: "session",
	// Development-only fallback, override in any real deployment.
	SessionSigningSecretKey: "a2V5MWtleTJrZXkza2V5NA==",
	SessionTTL:              24 * time.Hour,
	BcryptCost:              10,
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	value := fieldLevel.Field().String()

	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	return allowedLogLevels[value]
}

func (c *Config) validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return err
	}

	return validate.Struct(c)
}

// InitOption customizes New.
type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
}

// WithDisableFlagsParsing skips command-line flag registration,
// which tests need because the test binary owns the flag set.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

// New builds the configuration: defaults first, then command-line flags,
// then environment variables (with .env support), then validation.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("Unable to load .env file: %v", err)
	}

	values := defaultConfig

	if !options.disableFlagsParsing {
		flag.StringVar(&values.RunAddr, "a", values.RunAddr, "address and port to run server")
		flag.StringVar(&values.ShortURLBase, "b", values.ShortURLBase, "base address of the resulting shortened URL")
		flag.StringVar(&values.LogLevel, "l", values.LogLevel, "logger level")
		flag.StringVar(&values.SessionCookieName, "c", values.SessionCookieName, "name of the session cookie")
		flag.DurationVar(&values.SessionTTL, "t", values.SessionTTL, "session lifetime")
		flag.Parse()
	}

	if err := env.Parse(&values); err != nil {
		return nil, err
	}

	if err := values.validate(); err != nil {
		return nil, err
	}

	return &values, nil
}
