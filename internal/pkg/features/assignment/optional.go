package assignment

import (
	"context"

	"github.com/keboola/config-features/internal/pkg/features/model"
)

// optionalTypeMethod moves items of the configured types to the optional directory.
type optionalTypeMethod struct {
	base
}

func (m *optionalTypeMethod) ID() string {
	return model.MethodOptional
}

func (m *optionalTypeMethod) Name() string {
	return "Optional type"
}

func (m *optionalTypeMethod) Description() string {
	return "Assign designated types of configuration to the 'config/optional' subdirectory."
}

func (m *optionalTypeMethod) Assign(_ context.Context, _ bool) error {
	settings := m.settings(model.MethodOptional)
	for _, item := range m.manager.ConfigCollection().All() {
		if contains(settings.Types.Config, item.Type) {
			item.Subdirectory = model.OptionalDirectory
		}
	}
	return nil
}
