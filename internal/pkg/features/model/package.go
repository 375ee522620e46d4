package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type PackageStatus string

type PackageType string

const (
	StatusNoExport    PackageStatus = "no_export"
	StatusUninstalled PackageStatus = "uninstalled"
	StatusInstalled   PackageStatus = "installed"

	PackageTypeModule  PackageType = "module"
	PackageTypeProfile PackageType = "profile"
)

// Package is a named set of configuration items deployed as one unit.
type Package struct {
	MachineName  string        `yaml:"machineName" validate:"required,machinename"`
	Name         string        `yaml:"name" validate:"required"`
	Description  string        `yaml:"description,omitempty"`
	Config       []string      `yaml:"config,omitempty"`
	Required     Required      `yaml:"required,omitempty"`
	Extension    string        `yaml:"extension,omitempty"`
	Status       PackageStatus `yaml:"status" validate:"oneof=no_export uninstalled installed"`
	Type         PackageType   `yaml:"type" validate:"oneof=module profile"`
	Bundle       string        `yaml:"bundle,omitempty"`
	Dependencies []string      `yaml:"dependencies,omitempty"`
	Excluded     []string      `yaml:"excluded,omitempty"`
}

// NewPackage creates a package, an empty name is generated from the machine name, see PackageLabel.
func NewPackage(machineName, name, description string, pkgType PackageType, bundle string) *Package {
	if name == "" {
		name = PackageLabel(machineName)
	}
	if pkgType == "" {
		pkgType = PackageTypeModule
	}
	return &Package{
		MachineName: machineName,
		Name:        name,
		Description: description,
		Status:      StatusNoExport,
		Type:        pkgType,
		Bundle:      bundle,
	}
}

// PackageLabel converts the machine name to a human readable name, for example "event_registration" to "Event Registration".
func PackageLabel(machineName string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(machineName, "_", " "))
}

func (p *Package) HasConfig(name string) bool {
	for _, v := range p.Config {
		if v == name {
			return true
		}
	}
	return false
}

// AppendConfig adds the item name, if it is not already present.
func (p *Package) AppendConfig(name string) {
	if !p.HasConfig(name) {
		p.Config = append(p.Config, name)
	}
}

func (p *Package) RemoveConfig(name string) {
	for i, v := range p.Config {
		if v == name {
			p.Config = append(p.Config[:i:i], p.Config[i+1:]...)
			return
		}
	}
}

// MergeDependencies adds missing dependencies, the package itself is skipped.
func (p *Package) MergeDependencies(dependencies ...string) {
	for _, dep := range dependencies {
		if dep == "" || dep == p.MachineName {
			continue
		}
		found := false
		for _, v := range p.Dependencies {
			if v == dep {
				found = true
				break
			}
		}
		if !found {
			p.Dependencies = append(p.Dependencies, dep)
		}
	}
}

func (p *Package) SetRequired(v bool) {
	p.Required = Required{All: v}
}

func (p *Package) IsInstalled() bool {
	return p.Status == StatusInstalled
}

// Packages is an ordered set of packages keyed by the machine name.
type Packages struct {
	names    []string
	packages map[string]*Package
}

func NewPackages(packages ...*Package) *Packages {
	v := &Packages{packages: make(map[string]*Package)}
	for _, pkg := range packages {
		v.Add(pkg)
	}
	return v
}

// Add package or replace an existing package with the same machine name.
func (v *Packages) Add(pkg *Package) {
	if _, found := v.packages[pkg.MachineName]; !found {
		v.names = append(v.names, pkg.MachineName)
	}
	v.packages[pkg.MachineName] = pkg
}

func (v *Packages) Get(name string) (*Package, bool) {
	pkg, found := v.packages[name]
	return pkg, found
}

func (v *Packages) Has(name string) bool {
	_, found := v.packages[name]
	return found
}

func (v *Packages) Remove(name string) {
	if _, found := v.packages[name]; !found {
		return
	}
	delete(v.packages, name)
	for i, n := range v.names {
		if n == name {
			v.names = append(v.names[:i:i], v.names[i+1:]...)
			break
		}
	}
}

func (v *Packages) Len() int {
	return len(v.names)
}

func (v *Packages) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

func (v *Packages) All() []*Package {
	out := make([]*Package, 0, len(v.names))
	for _, name := range v.names {
		out = append(out, v.packages[name])
	}
	return out
}
