package assignment

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

// curatedExcluded are site specific items, they are never exported.
var curatedExcluded = []string{ // nolint: gochecknoglobals
	"core.extension",
	"field.settings",
	"field_ui.settings",
	"filter.settings",
	"forum.settings",
	"image.settings",
	"node.settings",
	"system.authorize",
	"system.date",
	"system.diff",
	"system.file",
	"system.logging",
	"system.maintenance",
	"system.performance",
	"system.site",
	"update.settings",
}

// curatedExcludedPrefixes are user role actions, roles are site specific.
var curatedExcludedPrefixes = []string{ // nolint: gochecknoglobals
	"system.action.user_add_role_action.",
	"system.action.user_remove_role_action.",
}

// excludeMethod flags items which should not be assigned.
type excludeMethod struct {
	base
}

func (m *excludeMethod) ID() string {
	return model.MethodExclude
}

func (m *excludeMethod) Name() string {
	return "Exclude"
}

func (m *excludeMethod) Description() string {
	return "Exclude configuration items from packaging by various methods including by configuration type."
}

func (m *excludeMethod) Assign(ctx context.Context, _ bool) error {
	settings := m.settings(model.MethodExclude)
	config := m.manager.ConfigCollection()

	// Exclude by configuration type
	for _, item := range config.All() {
		if contains(settings.Types.Config, item.Type) && !item.IsClaimed() {
			item.Excluded = true
		}
	}

	// Exclude configuration provided by installed extensions
	if settings.Module.Installed {
		m.excludeProvided(settings, config)
	}

	// Exclude site specific items
	if settings.Curated {
		for _, name := range config.Names() {
			if isCuratedExcluded(name) {
				config.Remove(name)
			}
		}
	}

	// Exclude by glob patterns
	if len(settings.Patterns) > 0 {
		for _, pattern := range settings.Patterns {
			if !doublestar.ValidatePattern(pattern) {
				return errors.Errorf(`invalid exclude pattern "%s"`, pattern)
			}
		}
		for _, item := range config.All() {
			if item.IsClaimed() {
				continue
			}
			for _, pattern := range settings.Patterns {
				if matched, _ := doublestar.Match(pattern, item.Name); matched {
					item.Excluded = true
					m.logger.Debugf(ctx, `excluded "%s" by pattern "%s"`, item.Name, pattern)
					break
				}
			}
		}
	}

	return nil
}

// excludeProvided flags items shipped by installed extensions.
// Config of the install profile and config of not required feature modules in the bundle namespace are kept.
func (m *excludeMethod) excludeProvided(settings model.Settings, config *model.Collection) {
	site := m.manager.Site()
	installed := site.InstalledConfig()

	if settings.Module.Profile && site.Profile != "" {
		if profile, found := site.Extension(site.Profile); found {
			installed.RemoveAll(m.manager.ListExtensionConfig(profile)...)
		}
	}

	if settings.Module.Namespace {
		bundle := m.bundle()
		if settings.Module.NamespaceAny {
			bundle = nil
		}
		for _, module := range m.manager.FeaturesModules(bundle, false) {
			pkg, found := m.manager.GetPackage(module.Name)
			if found && !pkg.Required.IsRequired() {
				installed.RemoveAll(m.manager.ListExtensionConfig(module)...)
			}
		}
	}

	for _, item := range config.All() {
		if installed.Contains(item.Name) {
			item.ProviderExcluded = true
		}
	}
}

func isCuratedExcluded(name string) bool {
	if contains(curatedExcluded, name) {
		return true
	}
	for _, prefix := range curatedExcludedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
