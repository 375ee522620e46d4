package assignment

import (
	"context"

	"github.com/keboola/config-features/internal/pkg/features/model"
)

const userRoleType = "user_role"

// alterMethod removes site specific keys from the item data.
type alterMethod struct {
	base
}

func (m *alterMethod) ID() string {
	return model.MethodAlter
}

func (m *alterMethod) Name() string {
	return "Alter"
}

func (m *alterMethod) Description() string {
	return "Alter configuration items before they are exported."
}

func (m *alterMethod) Assign(_ context.Context, _ bool) error {
	settings := m.settings(model.MethodAlter)
	for _, item := range m.manager.ConfigCollection().All() {
		if item.Data == nil {
			continue
		}
		if settings.Core {
			item.Data.Delete("_core")
		}
		if settings.UUID {
			item.Data.Delete("uuid")
		}
		if settings.UserPermissions && item.Type == userRoleType {
			item.Data.Delete("permissions")
		}
	}
	return nil
}
