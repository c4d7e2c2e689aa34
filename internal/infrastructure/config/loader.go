package config

import (
	"fmt"
	"go/token"
	"io"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ConfigErrorType classifies a configuration failure.
type ConfigErrorType string

const (
	ErrEnvFile    ConfigErrorType = "env_file"
	ErrParsing    ConfigErrorType = "parsing"
	ErrValidation ConfigErrorType = "validation"
)

// ConfigError is returned by Load.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// LoadOptions tunes Load.
type LoadOptions struct {
	// EnvFiles are dotenv files loaded before the environment is read.
	// Variables already set in the environment are not overridden.
	EnvFiles []string

	// Override is applied after the environment is read and before
	// validation; the CLI uses it for flags.
	Override func(*Config) error
}

// Load reads the configuration from the process environment.
//
// The sequence is:
//  1. Load any requested dotenv files (missing files are an error).
//  2. Populate Config via envconfig struct tags.
//  3. Apply opts.Override.
//  4. Validate the struct.
func Load(opts LoadOptions) (*Config, error) {
	if len(opts.EnvFiles) > 0 {
		if err := godotenv.Load(opts.EnvFiles...); err != nil {
			return nil, &ConfigError{
				Type:    ErrEnvFile,
				Message: "failed to load env file",
				Err:     err,
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrParsing,
			Message: "failed to process environment configuration",
			Err:     err,
		}
	}

	if opts.Override != nil {
		if err := opts.Override(&cfg); err != nil {
			return nil, &ConfigError{
				Type:    ErrParsing,
				Message: "failed to apply overrides",
				Err:     err,
			}
		}
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg
func Validate(cfg *Config) error {
	if err := newValidator().Struct(cfg); err != nil {
		return &ConfigError{
			Type:    ErrValidation,
			Message: "invalid configuration",
			Err:     err,
		}
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("globpattern", func(fl validator.FieldLevel) bool {
		_, err := filepath.Match(fl.Field().String(), "")
		return err == nil
	})
	_ = v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return token.IsIdentifier(s) && !token.IsKeyword(s)
	})
	return v
}

// Usage writes a table of the environment variables Load understands
func Usage(w io.Writer) error {
	var cfg Config
	return envconfig.Usagef("", &cfg, w, envconfig.DefaultTableFormat)
}
