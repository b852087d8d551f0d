// Package main provides the entry point for the catalog command.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/listenupapp/bookindex/internal/catalog"
	"github.com/listenupapp/bookindex/internal/cli"
	"github.com/listenupapp/bookindex/internal/config"
	"github.com/listenupapp/bookindex/internal/di"
	domainerrors "github.com/listenupapp/bookindex/internal/errors"
	"github.com/listenupapp/bookindex/internal/logger"
	"github.com/listenupapp/bookindex/internal/search"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	injector := di.NewContainer()

	if err := di.Bootstrap(ctx, injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap catalog: %v\n", err)
		return domainerrors.CodeOf(err).ExitCode()
	}

	log := do.MustInvoke[*logger.Logger](injector)
	cfg := do.MustInvoke[*config.Config](injector)

	runner := &cli.Runner{
		Catalog:     do.MustInvoke[*catalog.Index](injector),
		SearchLimit: cfg.Search.Limit,
		Out:         os.Stdout,
	}
	if cfg.Search.Enabled {
		runner.Search = do.MustInvoke[*search.Index](injector)
	}

	code := 0
	if err := runner.Run(ctx, cfg.Args); err != nil {
		log.Error("command failed", "args", cfg.Args, "error", err)
		if domainerrors.CodeOf(err) == domainerrors.CodeInvalidArgument {
			fmt.Fprint(os.Stderr, cli.Usage)
		}
		code = domainerrors.CodeOf(err).ExitCode()
	}

	// The DI container shuts down the catalog and search index in reverse order.
	if report := injector.Shutdown(); !report.Succeed {
		log.Error("shutdown error", "error", report)
	}

	return code
}
