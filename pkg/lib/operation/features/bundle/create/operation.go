package create

import (
	"context"

	"github.com/iancoleman/strcase"
	"github.com/spf13/afero"

	"github.com/keboola/config-features/internal/pkg/features/assignment"
	"github.com/keboola/config-features/internal/pkg/features/bundle"
	"github.com/keboola/config-features/internal/pkg/features/manager"
	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/telemetry"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
	"github.com/keboola/config-features/internal/pkg/validator"
)

type Options struct {
	BundlesDir string
	// MachineName is generated from the Name, if it is empty.
	MachineName string
	Name        string
	IsProfile   bool
	ProfileName string
}

type dependencies interface {
	Fs() afero.Fs
	Logger() log.Logger
	Telemetry() telemetry.Telemetry
	Validator() *validator.Validator
}

// Run creates a new bundle with the default assignment settings.
func Run(ctx context.Context, o Options, d dependencies) (b *model.Bundle, err error) {
	ctx, span := d.Telemetry().Tracer().Start(ctx, "keboola.go.operation.features.bundle.create")
	defer telemetry.EndSpan(span, &err)

	machineName := o.MachineName
	if machineName == "" {
		machineName = strcase.ToSnake(o.Name)
	}
	if err := d.Validator().ValidateCtx(ctx, machineName, "required,machinename", "machineName"); err != nil {
		return nil, err
	}

	repo := bundle.NewRepository(d.Fs(), o.BundlesDir, d.Validator())
	if _, found, err := repo.Get(ctx, machineName); err != nil {
		return nil, err
	} else if found {
		return nil, errors.Errorf(`bundle "%s" already exists`, machineName)
	}

	// The assigner copies settings of the stored default bundle
	assigner := assignment.New(d.Logger(), manager.New(d.Logger(), model.NewSite()), repo)
	if o.IsProfile {
		b, err = assigner.CreateBundleFromDefault(ctx, machineName, o.Name)
		if err != nil {
			return nil, err
		}
		b.IsProfile = true
		b.ProfileName = o.ProfileName
		if b.ProfileName == "" {
			b.ProfileName = machineName
		}
		if err := repo.Save(ctx, b); err != nil {
			return nil, err
		}
	} else if b, err = assigner.CreateBundleFromDefault(ctx, machineName, o.Name); err != nil {
		return nil, err
	}

	d.Logger().Infof(ctx, `created bundle "%s"`, b.MachineName)
	return b, nil
}
