package assignment

import (
	"context"

	"github.com/keboola/config-features/internal/pkg/features/model"
)

// namespaceMethod assigns items whose short name starts with a package name.
type namespaceMethod struct {
	base
}

func (m *namespaceMethod) ID() string {
	return model.MethodNamespace
}

func (m *namespaceMethod) Name() string {
	return "Namespace"
}

func (m *namespaceMethod) Description() string {
	return "Add to packages configuration with a machine name containing that package's machine name."
}

func (m *namespaceMethod) Assign(ctx context.Context, _ bool) error {
	bundle := m.bundle()
	patterns := make(map[string]string)
	for _, pkg := range m.manager.Packages().All() {
		patterns[bundle.ShortName(pkg.MachineName)] = pkg.MachineName
	}
	return m.manager.AssignConfigByPattern(ctx, patterns)
}
