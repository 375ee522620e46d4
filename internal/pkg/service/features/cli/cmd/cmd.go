// Package cmd contains the "features" CLI commands.
//
// Flags of each command are bound by the configmap package,
// so each flag can also be set by an ENV with the "FEATURES_" prefix or by a config file.
package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/keboola/config-features/internal/pkg/dependencies"
	"github.com/keboola/config-features/internal/pkg/env"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/service/common/configmap"
	"github.com/keboola/config-features/internal/pkg/telemetry"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
	"github.com/keboola/config-features/internal/pkg/validator"
	"github.com/keboola/config-features/pkg/lib/operation/features/assign"
	"github.com/keboola/config-features/pkg/lib/operation/features/bundle/create"
	"github.com/keboola/config-features/pkg/lib/operation/features/bundle/list"
	"github.com/keboola/config-features/pkg/lib/operation/features/export"
)

const (
	AppName   = "features"
	EnvPrefix = "FEATURES_"
)

type runner struct {
	stdout io.Writer
	stderr io.Writer
	osEnvs *env.Map
	fs     afero.Fs
}

// NewRootCommand creates parent of all sub-commands.
// Relative paths are resolved in the provided filesystem.
func NewRootCommand(stdout io.Writer, stderr io.Writer, osEnvs *env.Map, fs afero.Fs) *cobra.Command {
	r := &runner{stdout: stdout, stderr: stderr, osEnvs: osEnvs, fs: fs}

	root := &cobra.Command{
		Use:               AppName,
		Short:             "Split a site configuration snapshot into installable feature modules.",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	bundleCmd := &cobra.Command{
		Use:   "bundle",
		Short: "Manage bundles.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	bundleCmd.AddCommand(r.bundleListCommand(), r.bundleCreateCommand())
	root.AddCommand(r.assignCommand(), r.exportCommand(), bundleCmd)
	return root
}

func (r *runner) assignCommand() *cobra.Command {
	return r.command("assign", "Assign site config to packages and print the result.", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		flags := DefaultAssignFlags()
		d, err := r.bind(ctx, cmd, args, &flags, &flags.GlobalFlags)
		if err != nil {
			return err
		}
		_, err = assign.Run(ctx, assignOptions(flags), d)
		return err
	})
}

func (r *runner) exportCommand() *cobra.Command {
	return r.command("export", "Assign site config to packages and write them as modules.", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		flags := DefaultExportFlags()
		d, err := r.bind(ctx, cmd, args, &flags, &flags.GlobalFlags)
		if err != nil {
			return err
		}
		_, err = export.Run(ctx, export.Options{Assign: assignOptions(flags.AssignFlags), TargetDir: flags.TargetDir, Packages: flags.Packages}, d)
		return err
	})
}

func (r *runner) bundleListCommand() *cobra.Command {
	return r.command("list", "List bundles.", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		flags := DefaultBundleListFlags()
		d, err := r.bind(ctx, cmd, args, &flags, &flags.GlobalFlags)
		if err != nil {
			return err
		}
		_, err = list.Run(ctx, flags.BundlesDir, d)
		return err
	})
}

func (r *runner) bundleCreateCommand() *cobra.Command {
	return r.command("create", "Create a bundle with the default assignment settings.", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		flags := DefaultBundleCreateFlags()
		d, err := r.bind(ctx, cmd, args, &flags, &flags.GlobalFlags)
		if err != nil {
			return err
		}
		_, err = create.Run(ctx, create.Options{
			BundlesDir:  flags.BundlesDir,
			MachineName: flags.MachineName,
			Name:        flags.Name,
			IsProfile:   flags.Profile,
			ProfileName: flags.ProfileName,
		}, d)
		return err
	})
}

// command creates a leaf command, flags are parsed by the configmap package, not by the cobra.
func (r *runner) command(use, short string, run func(ctx context.Context, cmd *cobra.Command, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd.Context(), cmd, args)
			var helpErr configmap.HelpError
			if errors.As(err, &helpErr) {
				_, _ = fmt.Fprint(r.stdout, helpErr.Help)
				return nil
			}
			return err
		},
	}
}

// bind flags to the target in two passes, the second pass includes ENVs from ".env" files in the working dir.
func (r *runner) bind(ctx context.Context, cmd *cobra.Command, args []string, target any, global *GlobalFlags) (dependencies.Base, error) {
	spec := configmap.BindSpec{
		Args:      append([]string{cmd.CommandPath()}, args...),
		EnvNaming: env.NewNamingConvention(EnvPrefix),
		Envs:      r.osEnvs,
		Fs:        r.fs,
		Validator: validator.New(),
	}

	if err := configmap.Bind(ctx, spec, target); err != nil {
		return nil, err
	}

	fs := r.fs
	if global.WorkingDir != "" {
		fs = afero.NewBasePathFs(fs, global.WorkingDir)
		spec.Fs = fs
	}

	logger := log.NewCliLogger(r.stdout, r.stderr, global.Verbose)
	spec.Envs = env.LoadDotEnv(ctx, logger, r.osEnvs, fs, []string{"."})
	if err := configmap.Bind(ctx, spec, target); err != nil {
		return nil, err
	}

	logger = log.NewCliLogger(r.stdout, r.stderr, global.Verbose)
	logger.With(attribute.String("command", cmd.CommandPath())).Debugf(ctx, `running "%s"`, strings.Join(spec.Args, " "))
	return dependencies.NewBaseDeps(spec.Envs, logger, telemetry.NewNop(), clockwork.NewRealClock(), fs), nil
}

func assignOptions(flags AssignFlags) assign.Options {
	return assign.Options{
		SiteDir:    flags.SiteDir,
		BundlesDir: flags.BundlesDir,
		Bundle:     flags.Bundle,
		Methods:    flags.Methods,
		Force:      flags.Force,
	}
}
