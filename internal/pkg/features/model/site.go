package model

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/keboola/go-utils/pkg/orderedmap"
)

const (
	EntityGroupContent       = "content"
	EntityGroupConfiguration = "configuration"
)

// EntityType from the site registry.
type EntityType struct {
	ID    string `yaml:"id" validate:"required"`
	Label string `yaml:"label"`
	Group string `yaml:"group" validate:"oneof=content configuration"`
	// ConfigPrefix of the config entity names, for example "node.type".
	ConfigPrefix string `yaml:"configPrefix" validate:"required_if=Group configuration"`
}

// Site is a snapshot of the site state: install profile, entity types, extensions and active configuration.
type Site struct {
	Profile     string
	EntityTypes []EntityType
	Extensions  []*Extension
	// Active configuration of the site.
	Active *Collection
}

func NewSite() *Site {
	return &Site{Active: NewCollection()}
}

func (s *Site) EntityType(id string) (EntityType, bool) {
	for _, t := range s.EntityTypes {
		if t.ID == id {
			return t, true
		}
	}
	return EntityType{}, false
}

// ConfigTypeLabel returns label of the config type, the simple configuration is labelled "Simple configuration".
func (s *Site) ConfigTypeLabel(typ string) string {
	if typ == SimpleConfigType {
		return "Simple configuration"
	}
	if t, found := s.EntityType(typ); found && t.Label != "" {
		return t.Label
	}
	return typ
}

// ConfigTypeOf returns the entity type and the short name of the config name.
// The longest matching config prefix wins, names without a match are simple configuration.
func (s *Site) ConfigTypeOf(name string) (typ string, shortName string) {
	var best *EntityType
	for i := range s.EntityTypes {
		t := &s.EntityTypes[i]
		if t.Group != EntityGroupConfiguration || t.ConfigPrefix == "" {
			continue
		}
		if strings.HasPrefix(name, t.ConfigPrefix+".") && (best == nil || len(t.ConfigPrefix) > len(best.ConfigPrefix)) {
			best = t
		}
	}
	if best == nil {
		return SimpleConfigType, name
	}
	return best.ID, strings.TrimPrefix(name, best.ConfigPrefix+".")
}

// NewItem creates a config item with the type, short name and label detected from the name and data.
// The label is the "label" or "name" key of the data, otherwise the short name.
func (s *Site) NewItem(name string, data *orderedmap.OrderedMap) *Item {
	item := NewItem(name)
	if data != nil {
		item.Data = data
	}
	item.Type, item.ShortName = s.ConfigTypeOf(name)
	item.Label = item.ShortName
	for _, key := range []string{"label", "name"} {
		if v, found := item.Data.Get(key); found {
			if str, ok := v.(string); ok && str != "" {
				item.Label = str
				break
			}
		}
	}
	return item
}

func (s *Site) Extension(name string) (*Extension, bool) {
	for _, e := range s.Extensions {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// FeatureExtensions returns feature modules in the site order.
func (s *Site) FeatureExtensions() []*Extension {
	var out []*Extension
	for _, e := range s.Extensions {
		if e.IsFeature() {
			out = append(out, e)
		}
	}
	return out
}

// InstalledConfig returns config shipped by all installed extensions.
func (s *Site) InstalledConfig() mapset.Set[string] {
	out := mapset.NewThreadUnsafeSet[string]()
	for _, e := range s.Extensions {
		if e.Installed {
			out.Append(e.AllConfig()...)
		}
	}
	return out
}

// ConfigProviders maps config name to the feature module which ships it.
// If more feature modules ship the same config, the last one wins.
func (s *Site) ConfigProviders() map[string]string {
	out := make(map[string]string)
	for _, e := range s.FeatureExtensions() {
		for _, name := range e.AllConfig() {
			out[name] = e.Name
		}
	}
	return out
}

// ActiveItem returns a copy of the active configuration item.
func (s *Site) ActiveItem(name string) (*Item, bool) {
	if s.Active == nil {
		return nil, false
	}
	item, found := s.Active.Get(name)
	if !found {
		return nil, false
	}
	return item.Clone(), true
}

// ActiveCollection returns a fresh copy of the active configuration, without any assignment state.
func (s *Site) ActiveCollection() *Collection {
	out := NewCollection()
	if s.Active == nil {
		return out
	}
	providers := s.ConfigProviders()
	for _, item := range s.Active.All() {
		clone := item.Clone()
		clone.Provider = providers[clone.Name]
		out.Add(clone)
	}
	return out
}

// ContentEntityTypes returns sorted IDs of content entity types.
func (s *Site) ContentEntityTypes() []string {
	var out []string
	for _, t := range s.EntityTypes {
		if t.Group == EntityGroupContent {
			out = append(out, t.ID)
		}
	}
	sort.Strings(out)
	return out
}
