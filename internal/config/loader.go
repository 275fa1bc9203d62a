// loader.go implements the configuration loading lifecycle.
//
// The loading sequence is:
//  1. Enforce UTC timezone to prevent drift bugs in date-keyed API calls.
//  2. Load .env file via godotenv (non-fatal if absent).
//  3. Use envconfig to process struct tags and populate the Config struct.
//  4. Validate the struct using go-playground/validator.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"goalwatch/internal/types"
)

// Load reads, parses, and validates the goalwatch configuration from the
// process environment. A .env file in the working directory is merged in
// first without overriding variables already set.
//
// Errors are always *types.AppError with a config_* code; callers exit
// before entering any poll loop.
func Load() (*Config, error) {
	// Date-keyed endpoints ("/score/{date}") and log timestamps must agree;
	// forcing UTC keeps both stable across host timezone changes.
	time.Local = time.UTC

	// godotenv.Load silently succeeds when no .env exists and never
	// overrides variables already present in the environment.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, types.NewAppError(types.ErrCodeConfigInvalid,
			"failed to process environment configuration", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, types.NewAppError(types.ErrCodeConfigInvalid,
			fmt.Sprintf("configuration validation failed: %v", err), err)
	}

	return &cfg, nil
}
