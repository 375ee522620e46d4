// Package manager holds the configuration collection and packages of a single assignment run.
package manager

import (
	"context"
	"regexp"
	"sort"

	"github.com/umisama/go-regexpcache"
	"go.opentelemetry.io/otel/attribute"

	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

// falsePositives are config names never assigned by a namespace pattern.
// Blocks with the page title should not be assigned to a "page" package.
var falsePositives = []*regexp.Regexp{ // nolint: gochecknoglobals
	regexp.MustCompile(`block\.block\..*_page_title`),
}

type Manager struct {
	logger   log.Logger
	site     *model.Site
	bundle   *model.Bundle
	config   *model.Collection
	packages *model.Packages
}

type PackageNotFoundError struct {
	Name string
}

func (e PackageNotFoundError) Error() string {
	return `package "` + e.Name + `" not found`
}

func New(logger log.Logger, site *model.Site) *Manager {
	if site == nil {
		site = model.NewSite()
	}
	return &Manager{
		logger:   logger.WithComponent("features.manager"),
		site:     site,
		bundle:   model.NewDefaultBundle(),
		config:   model.NewCollection(),
		packages: model.NewPackages(),
	}
}

func (m *Manager) Site() *model.Site {
	return m.site
}

// Bundle returns the current bundle.
func (m *Manager) Bundle() *model.Bundle {
	return m.bundle
}

func (m *Manager) SetBundle(bundle *model.Bundle) {
	m.bundle = bundle
}

// ConfigCollection returns the configuration collection.
// An empty collection is loaded from the active configuration of the site.
func (m *Manager) ConfigCollection() *model.Collection {
	if m.config.Len() == 0 {
		m.config = m.site.ActiveCollection()
	}
	return m.config
}

func (m *Manager) SetConfigCollection(c *model.Collection) {
	if c == nil {
		c = model.NewCollection()
	}
	m.config = c
}

func (m *Manager) Packages() *model.Packages {
	return m.packages
}

func (m *Manager) SetPackages(packages *model.Packages) {
	if packages == nil {
		packages = model.NewPackages()
	}
	m.packages = packages
}

func (m *Manager) GetPackage(name string) (*model.Package, bool) {
	return m.packages.Get(name)
}

// FindPackage returns package by the machine name or by the short name in the current bundle.
func (m *Manager) FindPackage(name string) (*model.Package, bool) {
	if pkg, found := m.packages.Get(name); found {
		return pkg, true
	}
	return m.packages.Get(m.bundle.FullName(name))
}

// InitPackage creates the package, if it does not exist, and returns it.
// A generated package with the bundle prefix is returned too, for example "<bundle>_article" for "article".
// A package of a feature module is reused only by the exact machine name,
// so the generated "core" package never resolves to the "<bundle>_core" module.
func (m *Manager) InitPackage(ctx context.Context, machineName, name, description string, pkgType model.PackageType, bundle string) *model.Package {
	if pkg, found := m.FindPackage(machineName); found && (pkg.MachineName == machineName || pkg.Extension == "") {
		return pkg
	}
	if bundle == "" && !m.bundle.IsDefault() {
		bundle = m.bundle.MachineName
	}
	pkg := model.NewPackage(machineName, name, description, pkgType, bundle)
	m.packages.Add(pkg)
	m.logger.Debugf(ctx, `initialized package "%s"`, machineName)
	return pkg
}

// InitPackageFromExtension creates the package of an existing feature module, if it does not exist.
func (m *Manager) InitPackageFromExtension(ctx context.Context, ext *model.Extension) *model.Package {
	if pkg, found := m.packages.Get(ext.Name); found {
		return pkg
	}

	pkg := model.NewPackage(ext.Name, ext.Label, ext.Description, ext.PackageType(), "")
	pkg.Extension = ext.Name
	pkg.Dependencies = append([]string(nil), ext.Dependencies...)
	if ext.Installed {
		pkg.Status = model.StatusInstalled
	} else {
		pkg.Status = model.StatusUninstalled
	}
	if ext.Feature != nil {
		pkg.Bundle = ext.Feature.Bundle
		pkg.Required = ext.Feature.Required
		pkg.Excluded = append([]string(nil), ext.Feature.Excluded...)
	}

	m.packages.Add(pkg)
	m.logger.Debugf(ctx, `initialized package "%s" from extension`, ext.Name)
	return pkg
}

// AssignConfigPackage assigns the items to the package.
//
// Items already claimed by another package, excluded items, items excluded from the package
// and items provided by an installed extension are skipped, unless the force flag is set.
// Provider excluded items can be assigned to the package which provides them and to the profile package.
func (m *Manager) AssignConfigPackage(ctx context.Context, packageName string, names []string, force bool) error {
	pkg, found := m.packages.Get(packageName)
	if !found {
		return PackageNotFoundError{Name: packageName}
	}

	config := m.ConfigCollection()
	isProfilePackage := m.bundle.IsProfilePackage(packageName)
	for _, name := range names {
		item, found := config.Get(name)
		if !found || pkg.HasConfig(name) {
			continue
		}

		assignable := (!item.ProviderExcluded || isProfilePackage) && !item.Excluded
		assignable = assignable || item.Provider == packageName
		if !force && (item.IsClaimed() || !assignable || item.IsPackageExcluded(packageName)) {
			continue
		}
		if force && item.Excluded {
			continue
		}

		// Remove the item from the previous package
		if item.IsClaimed() && item.Package != packageName {
			if previous, found := m.packages.Get(item.Package); found {
				previous.RemoveConfig(name)
			}
		}

		pkg.AppendConfig(name)
		item.Package = packageName
		pkg.MergeDependencies(item.ModuleDependencies()...)
		m.logger.With(attribute.String("package", packageName)).Debugf(ctx, `assigned "%s"`, name)
	}

	return nil
}

// AssignConfigDependents assigns transitive dependents of the claimed items.
// Without the target package, an unclaimed dependent joins the package of the item it depends on.
// With the target package, dependents are force assigned to it.
// Empty names mean all items.
func (m *Manager) AssignConfigDependents(ctx context.Context, names []string, targetPackage string) error {
	config := m.ConfigCollection()
	if len(names) == 0 {
		names = config.Names()
	}

	errs := errors.NewMultiError()
	for _, name := range names {
		item, found := config.Get(name)
		if !found || !item.IsClaimed() {
			continue
		}
		for _, dependentName := range model.DependentsClosure(config, name) {
			dependent, _ := config.Get(dependentName)
			if targetPackage == "" && dependent.IsClaimed() {
				continue
			}
			packageName := targetPackage
			if packageName == "" {
				packageName = item.Package
			}
			if err := m.AssignConfigPackage(ctx, packageName, []string{dependentName}, targetPackage != ""); err != nil {
				errs.Append(err)
			}
		}
	}
	return errs.ErrorOrNil()
}

// AssignConfigByPattern assigns unclaimed items whose short name starts with the pattern
// followed by ".", "-", "_" or the end of the name.
// The map key is the pattern and the value is the package machine name.
// Patterns are processed in the reverse sorted order, so "event_registration" claims items before "event".
func (m *Manager) AssignConfigByPattern(ctx context.Context, patterns map[string]string) error {
	keys := make([]string, 0, len(patterns))
	for pattern := range patterns {
		keys = append(keys, pattern)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	config := m.ConfigCollection()
	errs := errors.NewMultiError()
	for _, pattern := range keys {
		packageName := patterns[pattern]
		if !m.packages.Has(packageName) {
			continue
		}
		re, err := regexpcache.Compile(`^` + regexp.QuoteMeta(pattern) + `([._-]|$)`)
		if err != nil {
			errs.Append(err)
			continue
		}
		for _, item := range config.All() {
			if item.IsClaimed() || isFalsePositive(item.Name) || !re.MatchString(item.ShortName) {
				continue
			}
			if err := m.AssignConfigPackage(ctx, packageName, []string{item.Name}, false); err != nil {
				errs.Append(err)
			}
		}
	}
	return errs.ErrorOrNil()
}

// ListExtensionConfig returns config shipped by the extension.
func (m *Manager) ListExtensionConfig(ext *model.Extension) []string {
	return ext.AllConfig()
}

// FeaturesModules returns feature modules of the bundle.
// Nil bundle means all feature modules. The default bundle owns modules without a bundle.
func (m *Manager) FeaturesModules(bundle *model.Bundle, installedOnly bool) []*model.Extension {
	var out []*model.Extension
	for _, ext := range m.site.FeatureExtensions() {
		if installedOnly && !ext.Installed {
			continue
		}
		if bundle != nil {
			extBundle := ext.Feature.Bundle
			if extBundle == "" {
				extBundle = model.DefaultBundleName
			}
			if extBundle != bundle.MachineName {
				continue
			}
		}
		out = append(out, ext)
	}
	return out
}

// Reset removes all packages and unassigns all items.
func (m *Manager) Reset() {
	m.packages = model.NewPackages()
	for _, item := range m.config.All() {
		item.Package = ""
	}
}

func isFalsePositive(name string) bool {
	for _, re := range falsePositives {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
