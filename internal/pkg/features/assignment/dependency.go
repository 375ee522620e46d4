package assignment

import (
	"context"

	"github.com/keboola/config-features/internal/pkg/features/model"
)

// dependencyMethod assigns dependents of each claimed item to the same package.
type dependencyMethod struct {
	base
}

func (m *dependencyMethod) ID() string {
	return model.MethodDependency
}

func (m *dependencyMethod) Name() string {
	return "Dependency"
}

func (m *dependencyMethod) Description() string {
	return "Add to packages configuration dependent on items already in that package."
}

func (m *dependencyMethod) Assign(ctx context.Context, _ bool) error {
	return m.manager.AssignConfigDependents(ctx, nil, "")
}
