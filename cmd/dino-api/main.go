package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/keboola/config-features/internal/pkg/env"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/service/common/configmap"
	"github.com/keboola/config-features/internal/pkg/service/common/servicectx"
	"github.com/keboola/config-features/internal/pkg/service/dino/api/config"
	"github.com/keboola/config-features/internal/pkg/service/dino/api/dependencies"
	dinoHttp "github.com/keboola/config-features/internal/pkg/service/dino/api/http"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(errors.PrefixError(err, "fatal error").Error()) // nolint:forbidigo
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load configuration.
	envs, err := env.FromOs()
	if err != nil {
		return errors.Errorf("cannot load envs: %w", err)
	}
	cfg, err := config.LoadFrom(ctx, os.Args, envs, afero.NewOsFs())
	var helpErr configmap.HelpError
	if errors.As(err, &helpErr) {
		fmt.Print(helpErr.Help) // nolint:forbidigo
		return nil
	} else if err != nil {
		return err
	}

	// Create logger.
	logger := log.NewServiceLogger(os.Stderr, cfg.DebugLog)

	// Create process abstraction.
	proc, err := servicectx.New(ctx, logger)
	if err != nil {
		return err
	}

	// Create dependencies.
	d, err := dependencies.NewAPIScope(proc.Ctx(), cfg, proc, logger)
	if err != nil {
		return err
	}

	// Start HTTP server.
	if _, err := dinoHttp.StartServer(proc.Ctx(), d); err != nil {
		return err
	}

	// Wait for the service shutdown.
	proc.WaitForShutdown()
	return nil
}
