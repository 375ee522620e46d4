package model

import (
	"github.com/keboola/go-utils/pkg/orderedmap"
)

const (
	// SimpleConfigType is the type of configuration which is not a config entity.
	SimpleConfigType = "simple"
	// InstallDirectory is the default subdirectory of the exported item.
	InstallDirectory = "install"
	// OptionalDirectory contains config installed only when its dependencies are met.
	OptionalDirectory = "optional"
)

// Item is a named unit of site configuration, for example a content type or a field definition.
type Item struct {
	Name string
	// Data is the raw configuration, the key order is kept.
	Data      *orderedmap.OrderedMap
	ShortName string
	Label     string
	Type      string
	// Dependents are names of items which depend on this item.
	Dependents []string
	// Subdirectory is empty for the default install directory.
	Subdirectory string

	// Package claiming the item, empty if unclaimed.
	Package string
	// Excluded items are never assigned.
	Excluded bool
	// ProviderExcluded marks items shipped by an installed extension.
	ProviderExcluded bool
	// PackageExcluded lists packages the item must not be assigned to.
	PackageExcluded []string
	// Provider is the feature module which ships the item.
	Provider string
}

func NewItem(name string) *Item {
	return &Item{Name: name, Data: orderedmap.New()}
}

func (i *Item) IsClaimed() bool {
	return i.Package != ""
}

func (i *Item) IsPackageExcluded(pkg string) bool {
	for _, v := range i.PackageExcluded {
		if v == pkg {
			return true
		}
	}
	return false
}

// ModuleDependencies returns module names from the "dependencies.module" key of the data.
func (i *Item) ModuleDependencies() []string {
	return i.stringsAt("dependencies.module")
}

// ConfigDependencies returns config names from the "dependencies.config" key of the data.
func (i *Item) ConfigDependencies() []string {
	return i.stringsAt("dependencies.config")
}

func (i *Item) stringsAt(path string) []string {
	if i.Data == nil {
		return nil
	}
	value, found, err := i.Data.GetNested(path)
	if err != nil || !found {
		return nil
	}
	values, ok := value.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ExportDirectory returns the config subdirectory used by the exporter.
func (i *Item) ExportDirectory() string {
	if i.Subdirectory == "" {
		return InstallDirectory
	}
	return i.Subdirectory
}

// Clone returns a deep copy of the item without the assignment state.
func (i *Item) Clone() *Item {
	out := &Item{
		Name:         i.Name,
		ShortName:    i.ShortName,
		Label:        i.Label,
		Type:         i.Type,
		Dependents:   append([]string(nil), i.Dependents...),
		Subdirectory: i.Subdirectory,
		Provider:     i.Provider,
	}
	if i.Data != nil {
		out.Data = i.Data.Clone()
	} else {
		out.Data = orderedmap.New()
	}
	return out
}
