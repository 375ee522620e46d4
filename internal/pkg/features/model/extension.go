package model

type ExtensionType string

const (
	ExtensionTypeModule  ExtensionType = "module"
	ExtensionTypeProfile ExtensionType = "profile"
	ExtensionTypeTheme   ExtensionType = "theme"
)

// Extension is a module, profile or theme present on the site.
type Extension struct {
	Name         string        `yaml:"name" validate:"required"`
	Label        string        `yaml:"label"`
	Description  string        `yaml:"description"`
	Type         ExtensionType `yaml:"type" validate:"omitempty,oneof=module profile theme"`
	Installed    bool          `yaml:"installed"`
	Dependencies []string      `yaml:"dependencies"`
	// Config shipped in the "config/install" directory.
	Config []string `yaml:"config"`
	// OptionalConfig shipped in the "config/optional" directory.
	OptionalConfig []string `yaml:"optional"`
	// Feature is set if the extension is a feature module.
	Feature *FeatureInfo `yaml:"feature"`
}

// FeatureInfo is the content of the "<module>.features.yml" file.
type FeatureInfo struct {
	Bundle   string   `yaml:"bundle,omitempty"`
	Required Required `yaml:"required,omitempty"`
	Excluded []string `yaml:"excluded,omitempty"`
}

func (e *Extension) IsFeature() bool {
	return e.Feature != nil
}

// AllConfig returns install and optional config names.
func (e *Extension) AllConfig() []string {
	out := make([]string, 0, len(e.Config)+len(e.OptionalConfig))
	out = append(out, e.Config...)
	out = append(out, e.OptionalConfig...)
	return out
}

func (e *Extension) PackageType() PackageType {
	if e.Type == ExtensionTypeProfile {
		return PackageTypeProfile
	}
	return PackageTypeModule
}
