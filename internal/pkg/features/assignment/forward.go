package assignment

import (
	"context"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

// forwardDependencyMethod assigns an unclaimed item to the package of its dependents,
// if all claimed dependents are in the same package.
type forwardDependencyMethod struct {
	base
}

func (m *forwardDependencyMethod) ID() string {
	return model.MethodForwardDependency
}

func (m *forwardDependencyMethod) Name() string {
	return "Forward dependency"
}

func (m *forwardDependencyMethod) Description() string {
	return "Add to packages configuration on which items in the package depend."
}

func (m *forwardDependencyMethod) Assign(ctx context.Context, _ bool) error {
	config := m.manager.ConfigCollection()
	errs := errors.NewMultiError()

	// Dependents are processed before the items they depend on
	for _, name := range model.DependencyOrder(config) {
		item, _ := config.Get(name)
		if item.IsClaimed() {
			continue
		}

		packages := mapset.NewThreadUnsafeSet[string]()
		for _, dependentName := range item.Dependents {
			if dependent, found := config.Get(dependentName); found && dependent.IsClaimed() {
				packages.Add(dependent.Package)
			}
		}

		// Zero or multiple packages, the target is ambiguous
		if packages.Cardinality() != 1 {
			continue
		}

		packageName, _ := packages.Pop()
		if err := m.manager.AssignConfigPackage(ctx, packageName, []string{name}, false); err != nil {
			errs.Append(err)
		}
	}

	return errs.ErrorOrNil()
}
