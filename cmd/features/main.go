package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/keboola/config-features/internal/pkg/env"
	"github.com/keboola/config-features/internal/pkg/service/features/cli/cmd"
)

func main() {
	envs, err := env.FromOs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error()) // nolint:forbidigo
		os.Exit(1)
	}

	root := cmd.NewRootCommand(os.Stdout, os.Stderr, envs, afero.NewOsFs())
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err.Error()) // nolint:forbidigo
		os.Exit(1)
	}
}
