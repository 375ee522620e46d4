package assign

import (
	"context"
	"strings"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"

	"github.com/keboola/config-features/internal/pkg/features/assignment"
	"github.com/keboola/config-features/internal/pkg/features/bundle"
	"github.com/keboola/config-features/internal/pkg/features/manager"
	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/features/snapshot"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/telemetry"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
	"github.com/keboola/config-features/internal/pkg/validator"
)

type Options struct {
	SiteDir    string
	BundlesDir string
	// Bundle machine name, the default bundle is used if empty or not found.
	Bundle string
	// Methods to apply, all enabled methods of the bundle are applied if empty.
	Methods []string
	Force   bool
}

type dependencies interface {
	Fs() afero.Fs
	Logger() log.Logger
	Telemetry() telemetry.Telemetry
	Validator() *validator.Validator
}

func Run(ctx context.Context, o Options, d dependencies) (mgr *manager.Manager, err error) {
	ctx, span := d.Telemetry().Tracer().Start(ctx, "keboola.go.operation.features.assign")
	defer telemetry.EndSpan(span, &err)

	logger := d.Logger()

	site, err := snapshot.NewLoader(logger, d.Fs(), d.Validator()).Load(ctx, o.SiteDir)
	if err != nil {
		return nil, err
	}

	mgr = manager.New(logger, site)
	assigner := assignment.New(logger, mgr, bundle.NewRepository(d.Fs(), o.BundlesDir, d.Validator()))

	bundleName := o.Bundle
	if bundleName == "" {
		bundleName = model.DefaultBundleName
	}
	if _, err := assigner.LoadBundle(ctx, bundleName); err != nil {
		return nil, err
	}

	if len(o.Methods) == 0 {
		err = assigner.AssignConfigPackages(ctx, o.Force)
	} else {
		errs := errors.NewMultiError()
		for _, id := range o.Methods {
			if err := assigner.ApplyAssignmentMethod(ctx, id, o.Force); err != nil {
				errs.AppendWithPrefixf(err, `assignment method "%s" failed`, id)
			}
		}
		err = errs.ErrorOrNil()
	}
	if err != nil {
		return nil, err
	}

	for _, pkg := range mgr.Packages().All() {
		logger.
			With(attribute.String("package", pkg.MachineName), attribute.Int("config.count", len(pkg.Config))).
			Infof(ctx, `package "%s": %s`, pkg.MachineName, strings.Join(pkg.Config, ", "))
	}

	return mgr, nil
}
