package model

import (
	"sort"
	"strings"
)

const DefaultBundleName = "default"

// Assignment method IDs.
const (
	MethodAlter             = "alter"
	MethodBase              = "base"
	MethodCore              = "core"
	MethodDependency        = "dependency"
	MethodExclude           = "exclude"
	MethodExisting          = "existing"
	MethodForwardDependency = "forward_dependency"
	MethodNamespace         = "namespace"
	MethodOptional          = "optional"
	MethodPackages          = "packages"
	MethodProfile           = "profile"
	MethodSite              = "site"
)

// Bundle groups packages under a common namespace and holds settings of the assignment methods.
type Bundle struct {
	MachineName string                `yaml:"machineName" validate:"required,machinename"`
	Name        string                `yaml:"name" validate:"required"`
	Description string                `yaml:"description,omitempty"`
	IsProfile   bool                  `yaml:"isProfile,omitempty"`
	ProfileName string                `yaml:"profileName,omitempty" validate:"required_if=IsProfile true"`
	Assignments map[string]Assignment `yaml:"assignments" validate:"dive"`
}

type Assignment struct {
	Enabled  bool     `yaml:"enabled"`
	Weight   int      `yaml:"weight"`
	Settings Settings `yaml:",inline"`
}

// Settings of an assignment method, each method uses only some of the fields.
type Settings struct {
	Types   TypeSettings   `yaml:"types,omitempty"`
	Curated bool           `yaml:"curated,omitempty"`
	Module  ModuleSettings `yaml:"module,omitempty"`
	// Patterns are doublestar globs matched against config names by the exclude method.
	Patterns []string `yaml:"patterns,omitempty"`
	// Alter method flags.
	Core            bool `yaml:"core,omitempty"`
	UUID            bool `yaml:"uuid,omitempty"`
	UserPermissions bool `yaml:"userPermissions,omitempty"`
}

type TypeSettings struct {
	Config  []string `yaml:"config,omitempty"`
	Content []string `yaml:"content,omitempty"`
}

type ModuleSettings struct {
	Installed    bool `yaml:"installed,omitempty"`
	Profile      bool `yaml:"profile,omitempty"`
	Namespace    bool `yaml:"namespace,omitempty"`
	NamespaceAny bool `yaml:"namespaceAny,omitempty"`
}

// DefaultAssignments returns settings of all assignment methods used by the default bundle.
func DefaultAssignments() map[string]Assignment {
	return map[string]Assignment{
		MethodAlter: {Enabled: true, Weight: 0, Settings: Settings{Core: true, UUID: true, UserPermissions: true}},
		MethodBase: {Enabled: true, Weight: -2, Settings: Settings{
			Types: TypeSettings{Config: []string{"comment_type", "node_type"}, Content: []string{"user"}},
		}},
		MethodCore: {Enabled: true, Weight: 5, Settings: Settings{
			Types: TypeSettings{Config: []string{
				"date_format", "field_storage_config", "entity_form_mode", "entity_view_mode", "image_style", "menu", "user_role",
			}},
		}},
		MethodDependency: {Enabled: true, Weight: 15},
		MethodExclude: {Enabled: true, Weight: -5, Settings: Settings{
			Curated: true,
			Module:  ModuleSettings{Installed: true, Profile: true, Namespace: true},
		}},
		MethodExisting:          {Enabled: true, Weight: 12},
		MethodForwardDependency: {Enabled: true, Weight: 4},
		MethodNamespace:         {Enabled: true, Weight: 0},
		MethodOptional:          {Enabled: true, Weight: 0},
		MethodPackages:          {Enabled: true, Weight: -20},
		MethodProfile: {Enabled: true, Weight: 10, Settings: Settings{
			Curated: true,
			Types: TypeSettings{Config: []string{
				"block", "language_content_settings", "configurable_language", "migration", "shortcut_set", "tour",
			}},
		}},
		MethodSite: {Enabled: true, Weight: 7, Settings: Settings{
			Types: TypeSettings{Config: []string{
				"action", "contact_form", "block_content_type", "filter_format", "rdf_mapping", "search_page", "shortcut_set", "tour",
			}},
		}},
	}
}

func NewDefaultBundle() *Bundle {
	return &Bundle{
		MachineName: DefaultBundleName,
		Name:        "Default",
		Description: "Default bundle, packages are not namespaced.",
		Assignments: DefaultAssignments(),
	}
}

// NewBundleFromDefault creates a new bundle with the settings of the default bundle.
func NewBundleFromDefault(machineName, name string) *Bundle {
	b := NewDefaultBundle()
	b.MachineName = machineName
	if name == "" {
		name = machineName
	}
	b.Name = name
	b.Description = ""
	return b
}

func (b *Bundle) IsDefault() bool {
	return b.MachineName == DefaultBundleName
}

// FullName adds the bundle prefix to the short package name.
func (b *Bundle) FullName(shortName string) string {
	if b.IsDefault() || b.InNamespace(shortName) {
		return shortName
	}
	return b.prefix() + shortName
}

// ShortName removes the bundle prefix from the package machine name.
func (b *Bundle) ShortName(machineName string) string {
	if b.IsDefault() {
		return machineName
	}
	return strings.TrimPrefix(machineName, b.prefix())
}

// InNamespace returns true if the package machine name starts with the bundle prefix.
func (b *Bundle) InNamespace(machineName string) bool {
	return !b.IsDefault() && strings.HasPrefix(machineName, b.prefix())
}

func (b *Bundle) IsProfilePackage(packageName string) bool {
	return b.IsProfile && b.ProfileName != "" && packageName == b.ProfileName
}

// Assignment returns settings of the method, missing settings fall back to the defaults.
func (b *Bundle) Assignment(methodID string) Assignment {
	if a, found := b.Assignments[methodID]; found {
		return a
	}
	a := DefaultAssignments()[methodID]
	a.Enabled = false
	return a
}

func (b *Bundle) AssignmentSettings(methodID string) Settings {
	return b.Assignment(methodID).Settings
}

// SetAssignmentSettings replaces settings of the method, enabled flag and weight are kept.
func (b *Bundle) SetAssignmentSettings(methodID string, settings Settings) {
	a := b.Assignment(methodID)
	a.Settings = settings
	b.setAssignment(methodID, a)
}

func (b *Bundle) SetAssignmentWeight(methodID string, weight int) {
	a := b.Assignment(methodID)
	a.Weight = weight
	b.setAssignment(methodID, a)
}

// SetEnabledAssignments enables the listed methods and disables all others.
func (b *Bundle) SetEnabledAssignments(methodIDs []string) {
	enabled := make(map[string]bool, len(methodIDs))
	for _, id := range methodIDs {
		enabled[id] = true
	}
	for id := range DefaultAssignments() {
		a := b.Assignment(id)
		a.Enabled = enabled[id]
		b.setAssignment(id, a)
	}
	for id := range enabled {
		a := b.Assignment(id)
		a.Enabled = true
		b.setAssignment(id, a)
	}
}

// EnabledAssignments returns IDs of the enabled methods ordered by weight, then by ID.
func (b *Bundle) EnabledAssignments() []string {
	var out []string
	for id, a := range b.Assignments {
		if a.Enabled {
			out = append(out, id)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := b.Assignments[out[i]].Weight, b.Assignments[out[j]].Weight
		if wi != wj {
			return wi < wj
		}
		return out[i] < out[j]
	})
	return out
}

func (b *Bundle) Clone() *Bundle {
	out := *b
	out.Assignments = make(map[string]Assignment, len(b.Assignments))
	for id, a := range b.Assignments {
		a.Settings.Types.Config = append([]string(nil), a.Settings.Types.Config...)
		a.Settings.Types.Content = append([]string(nil), a.Settings.Types.Content...)
		a.Settings.Patterns = append([]string(nil), a.Settings.Patterns...)
		out.Assignments[id] = a
	}
	return &out
}

func (b *Bundle) setAssignment(methodID string, a Assignment) {
	if b.Assignments == nil {
		b.Assignments = make(map[string]Assignment)
	}
	b.Assignments[methodID] = a
}

func (b *Bundle) prefix() string {
	return b.MachineName + "_"
}
