// Package di provides dependency injection configuration for the book index.
package di

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/listenupapp/bookindex/internal/catalog"
	"github.com/listenupapp/bookindex/internal/config"
	"github.com/listenupapp/bookindex/internal/di/providers"
	"github.com/listenupapp/bookindex/internal/loader"
	"github.com/listenupapp/bookindex/internal/logger"
	"github.com/listenupapp/bookindex/internal/search"
)

// NewContainer creates the DI container with configuration read from the
// process flags and environment.
func NewContainer() *do.RootScope {
	injector := do.New()
	do.Provide(injector, providers.ProvideConfig)
	register(injector)
	return injector
}

// NewContainerWithConfig creates the DI container around an existing configuration.
func NewContainerWithConfig(cfg *config.Config) *do.RootScope {
	injector := do.New()
	do.ProvideValue(injector, cfg)
	register(injector)
	return injector
}

func register(injector do.Injector) {
	// Core infrastructure
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Catalog layer
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideLoader)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
}

// Bootstrap initializes all services and loads the seed catalog if one is configured.
func Bootstrap(ctx context.Context, injector do.Injector) error {
	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return err
	}
	log := do.MustInvoke[*logger.Logger](injector)
	idx := do.MustInvoke[*catalog.Index](injector)
	ldr := do.MustInvoke[*loader.Loader](injector)

	// The search index registers itself as the catalog listener, so it has to
	// exist before the seed is loaded.
	if cfg.Search.Enabled {
		if _, err := do.Invoke[*search.Index](injector); err != nil {
			return err
		}
	}

	if cfg.Catalog.SeedPath == "" {
		log.Info("no seed file configured, starting with an empty catalog")
		return nil
	}

	if err := ldr.LoadFile(ctx, cfg.Catalog.SeedPath, idx); err != nil {
		return err
	}

	log.Info("catalog ready",
		"books", idx.BookCount(),
		"authors", idx.AuthorCount(),
	)
	return nil
}
