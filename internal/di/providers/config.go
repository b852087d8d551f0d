package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookindex/internal/config"
	"github.com/listenupapp/bookindex/internal/logger"
	"github.com/listenupapp/bookindex/internal/validation"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Debug("starting book index",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"seed_path", cfg.Catalog.SeedPath,
		"search", cfg.Search.Enabled,
	)

	return log, nil
}

// ProvideValidator provides the shared struct validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
