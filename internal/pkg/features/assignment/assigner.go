package assignment

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/keboola/config-features/internal/pkg/features/manager"
	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

// BundleRepository stores bundles.
type BundleRepository interface {
	Get(ctx context.Context, machineName string) (*model.Bundle, bool, error)
	Save(ctx context.Context, bundle *model.Bundle) error
}

type Assigner struct {
	logger  log.Logger
	manager *manager.Manager
	bundles BundleRepository
	methods map[string]Method
}

type UnknownMethodError struct {
	id string
}

func (e UnknownMethodError) Error() string {
	return `assignment method "` + e.id + `" not found`
}

func New(logger log.Logger, mgr *manager.Manager, bundles BundleRepository) *Assigner {
	logger = logger.WithComponent("features.assigner")
	a := &Assigner{logger: logger, manager: mgr, bundles: bundles, methods: make(map[string]Method)}
	for _, method := range newMethods(mgr, logger) {
		a.methods[method.ID()] = method
	}
	return a
}

func (a *Assigner) Manager() *manager.Manager {
	return a.manager
}

// Bundle returns the current bundle.
func (a *Assigner) Bundle() *model.Bundle {
	return a.manager.Bundle()
}

func (a *Assigner) SetBundle(bundle *model.Bundle) {
	a.manager.SetBundle(bundle)
}

// LoadBundle sets the bundle as the current bundle and returns it.
// The default bundle is used, if the bundle does not exist.
func (a *Assigner) LoadBundle(ctx context.Context, machineName string) (*model.Bundle, error) {
	bundle, found, err := a.bundles.Get(ctx, machineName)
	if err != nil {
		return nil, err
	}
	if !found {
		a.logger.Debugf(ctx, `bundle "%s" not found, using the default bundle`, machineName)
		if bundle, found, err = a.bundles.Get(ctx, model.DefaultBundleName); err != nil {
			return nil, err
		} else if !found {
			bundle = model.NewDefaultBundle()
		}
	}
	a.SetBundle(bundle)
	return bundle, nil
}

// CreateBundleFromDefault creates a new bundle with the default settings, saves it and sets it as the current bundle.
func (a *Assigner) CreateBundleFromDefault(ctx context.Context, machineName, name string) (*model.Bundle, error) {
	defaultBundle, found, err := a.bundles.Get(ctx, model.DefaultBundleName)
	if err != nil {
		return nil, err
	}

	var bundle *model.Bundle
	if found {
		bundle = defaultBundle.Clone()
		bundle.MachineName = machineName
		bundle.Name = name
		bundle.Description = ""
		if bundle.Name == "" {
			bundle.Name = machineName
		}
	} else {
		bundle = model.NewBundleFromDefault(machineName, name)
	}

	if err := a.bundles.Save(ctx, bundle); err != nil {
		return nil, err
	}
	a.SetBundle(bundle)
	return bundle, nil
}

// Methods returns IDs of all assignment methods.
func (a *Assigner) Methods() []string {
	out := make([]string, 0, len(a.methods))
	for id := range a.methods {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (a *Assigner) Method(id string) (Method, bool) {
	m, found := a.methods[id]
	return m, found
}

// AssignConfigPackages runs enabled methods of the current bundle ordered by weight.
func (a *Assigner) AssignConfigPackages(ctx context.Context, force bool) error {
	errs := errors.NewMultiError()
	for _, id := range a.Bundle().EnabledAssignments() {
		if err := a.ApplyAssignmentMethod(ctx, id, force); err != nil {
			errs.AppendWithPrefixf(err, `assignment method "%s" failed`, id)
		}
	}
	return errs.ErrorOrNil()
}

// ApplyAssignmentMethod runs the method, regardless of whether it is enabled.
func (a *Assigner) ApplyAssignmentMethod(ctx context.Context, id string, force bool) error {
	method, found := a.methods[id]
	if !found {
		return UnknownMethodError{id: id}
	}
	a.logger.With(attribute.String("method", id)).Debugf(ctx, `applying assignment method "%s"`, method.Name())
	return method.Assign(ctx, force)
}

// Reset removes all packages, so the methods can be applied again.
func (a *Assigner) Reset() {
	a.manager.Reset()
}
