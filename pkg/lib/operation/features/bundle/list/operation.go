package list

import (
	"context"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"

	"github.com/keboola/config-features/internal/pkg/features/bundle"
	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/telemetry"
	"github.com/keboola/config-features/internal/pkg/validator"
)

type dependencies interface {
	Fs() afero.Fs
	Logger() log.Logger
	Telemetry() telemetry.Telemetry
	Validator() *validator.Validator
}

func Run(ctx context.Context, bundlesDir string, d dependencies) (bundles []*model.Bundle, err error) {
	ctx, span := d.Telemetry().Tracer().Start(ctx, "keboola.go.operation.features.bundle.list")
	defer telemetry.EndSpan(span, &err)

	bundles, err = bundle.NewRepository(d.Fs(), bundlesDir, d.Validator()).List(ctx)
	if err != nil {
		return nil, err
	}

	for _, b := range bundles {
		d.Logger().
			With(attribute.String("bundle", b.MachineName), attribute.Bool("profile", b.IsProfile)).
			Infof(ctx, `%s: %s`, b.MachineName, b.Name)
	}
	return bundles, nil
}
