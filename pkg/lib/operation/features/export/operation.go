package export

import (
	"context"

	"github.com/spf13/afero"

	featuresExport "github.com/keboola/config-features/internal/pkg/features/export"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/telemetry"
	"github.com/keboola/config-features/internal/pkg/validator"
	"github.com/keboola/config-features/pkg/lib/operation/features/assign"
)

type Options struct {
	Assign    assign.Options
	TargetDir string
	// Packages to export, all packages with config are exported if empty.
	Packages []string
}

type dependencies interface {
	Fs() afero.Fs
	Logger() log.Logger
	Telemetry() telemetry.Telemetry
	Validator() *validator.Validator
}

func Run(ctx context.Context, o Options, d dependencies) (modules []featuresExport.Module, err error) {
	ctx, span := d.Telemetry().Tracer().Start(ctx, "keboola.go.operation.features.export")
	defer telemetry.EndSpan(span, &err)

	mgr, err := assign.Run(ctx, o.Assign, d)
	if err != nil {
		return nil, err
	}

	modules, err = featuresExport.New(d.Logger(), d.Fs()).Export(ctx, mgr, o.TargetDir, o.Packages...)
	if err != nil {
		return nil, err
	}

	d.Logger().Infof(ctx, `exported %d modules to "%s"`, len(modules), o.TargetDir)
	return modules, nil
}
