// Package export writes packages as module directories:
//
//	<module>/<module>.info.yml
//	<module>/<module>.features.yml
//	<module>/config/install/<item>.yml
//	<module>/config/optional/<item>.yml
package export

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"

	"github.com/keboola/config-features/internal/pkg/encoding/yaml"
	"github.com/keboola/config-features/internal/pkg/features/manager"
	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

const (
	InfoFileSuffix     = ".info.yml"
	FeaturesFileSuffix = ".features.yml"
	ConfigDir          = "config"
	FileExtension      = ".yml"
)

// InfoFile is the content of the "<module>.info.yml" file.
type InfoFile struct {
	Name         string            `yaml:"name"`
	Type         model.PackageType `yaml:"type"`
	Description  string            `yaml:"description,omitempty"`
	Package      string            `yaml:"package,omitempty"`
	Dependencies []string          `yaml:"dependencies,omitempty"`
}

// Module is an exported package.
type Module struct {
	MachineName string
	Path        string
	Files       []string
}

type Exporter struct {
	logger log.Logger
	fs     afero.Fs
}

func New(logger log.Logger, fs afero.Fs) *Exporter {
	return &Exporter{logger: logger.WithComponent("features.export"), fs: fs}
}

// Export writes the packages to the target directory, an existing module directory is replaced.
// If no package name is specified, all packages with config are exported.
func (e *Exporter) Export(ctx context.Context, mgr *manager.Manager, dir string, names ...string) ([]Module, error) {
	var packages []*model.Package
	if len(names) == 0 {
		for _, pkg := range mgr.Packages().All() {
			if len(pkg.Config) > 0 {
				packages = append(packages, pkg)
			}
		}
	} else {
		for _, name := range names {
			pkg, found := mgr.FindPackage(name)
			if !found {
				return nil, manager.PackageNotFoundError{Name: name}
			}
			packages = append(packages, pkg)
		}
	}

	modules := make(map[string]string)
	for _, pkg := range packages {
		name := ModuleName(mgr.Bundle(), pkg)
		if other, found := modules[name]; found {
			return nil, errors.Errorf(`module "%s" is exported by packages "%s" and "%s"`, name, other, pkg.MachineName)
		}
		modules[name] = pkg.MachineName
	}

	errs := errors.NewMultiError()
	var out []Module
	for _, pkg := range packages {
		module, err := e.exportPackage(ctx, mgr, dir, pkg)
		if err != nil {
			errs.AppendWithPrefixf(err, `cannot export package "%s"`, pkg.MachineName)
			continue
		}
		out = append(out, module)
	}
	return out, errs.ErrorOrNil()
}

func (e *Exporter) exportPackage(ctx context.Context, mgr *manager.Manager, dir string, pkg *model.Package) (Module, error) {
	machineName := ModuleName(mgr.Bundle(), pkg)
	module := Module{MachineName: machineName, Path: filepath.Join(dir, machineName)}

	if err := e.fs.RemoveAll(module.Path); err != nil {
		return module, errors.Errorf(`cannot remove directory "%s": %w`, module.Path, err)
	}

	info := InfoFile{
		Name:         pkg.Name,
		Type:         pkg.Type,
		Description:  pkg.Description,
		Dependencies: pkg.Dependencies,
	}
	if pkg.Bundle != "" {
		info.Package = pkg.Bundle
	}
	if err := e.writeYAML(&module, machineName+InfoFileSuffix, info); err != nil {
		return module, err
	}

	features := model.FeatureInfo{Bundle: pkg.Bundle, Required: pkg.Required, Excluded: pkg.Excluded}
	if err := e.writeYAML(&module, machineName+FeaturesFileSuffix, features); err != nil {
		return module, err
	}

	config := mgr.ConfigCollection()
	for _, name := range pkg.Config {
		item, found := config.Get(name)
		if !found {
			continue
		}
		content, err := yaml.EncodeOrderedMap(item.Data)
		if err != nil {
			return module, errors.PrefixErrorf(err, `cannot encode config "%s"`, name)
		}
		if err := e.writeFile(&module, filepath.Join(ConfigDir, item.ExportDirectory(), name+FileExtension), content); err != nil {
			return module, err
		}
	}

	e.logger.
		With(attribute.String("package", pkg.MachineName), attribute.Int("config.count", len(pkg.Config))).
		Infof(ctx, `exported module "%s"`, module.Path)
	return module, nil
}

func (e *Exporter) writeYAML(module *Module, relPath string, v any) error {
	content, err := yaml.Encode(v)
	if err != nil {
		return err
	}
	return e.writeFile(module, relPath, content)
}

func (e *Exporter) writeFile(module *Module, relPath string, content []byte) error {
	path := filepath.Join(module.Path, relPath)
	if err := e.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Errorf(`cannot create directory "%s": %w`, filepath.Dir(path), err)
	}
	if err := afero.WriteFile(e.fs, path, content, 0o644); err != nil {
		return errors.Errorf(`cannot write file "%s": %w`, path, err)
	}
	module.Files = append(module.Files, relPath)
	return nil
}

// ModuleName returns the machine name of the exported module.
// Generated packages are namespaced by the bundle, packages of existing extensions keep their name.
func ModuleName(bundle *model.Bundle, pkg *model.Package) string {
	if pkg.Extension != "" || pkg.Type == model.PackageTypeProfile {
		return pkg.MachineName
	}
	return bundle.FullName(pkg.MachineName)
}
