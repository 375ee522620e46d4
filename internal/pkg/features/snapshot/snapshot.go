// Package snapshot loads the site state from a directory:
//
//	<dir>/site.yml          install profile, entity types and extensions
//	<dir>/config/<name>.yml active configuration, one file per item
package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/keboola/config-features/internal/pkg/encoding/yaml"
	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
	"github.com/keboola/config-features/internal/pkg/validator"
)

const (
	ManifestFile  = "site.yml"
	ConfigDir     = "config"
	FileExtension = ".yml"

	readConcurrency = 16
)

// Manifest is the content of the site.yml file.
type Manifest struct {
	Profile     string             `yaml:"profile"`
	EntityTypes []model.EntityType `yaml:"entityTypes" validate:"dive"`
	Extensions  []*model.Extension `yaml:"extensions" validate:"dive"`
}

type Loader struct {
	logger    log.Logger
	fs        afero.Fs
	validator *validator.Validator
}

func NewLoader(logger log.Logger, fs afero.Fs, v *validator.Validator) *Loader {
	return &Loader{logger: logger.WithComponent("features.snapshot"), fs: fs, validator: v}
}

// Load reads the manifest and the active configuration.
// Item type, short name and label are detected from the entity types, dependents are computed from the item dependencies.
func (l *Loader) Load(ctx context.Context, dir string) (*model.Site, error) {
	manifest, err := l.loadManifest(ctx, dir)
	if err != nil {
		return nil, err
	}

	site := model.NewSite()
	site.Profile = manifest.Profile
	site.EntityTypes = manifest.EntityTypes
	site.Extensions = manifest.Extensions

	configDir := filepath.Join(dir, ConfigDir)
	files, err := afero.ReadDir(l.fs, configDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Errorf(`cannot read directory "%s": %w`, configDir, err)
	}

	var names []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), FileExtension) {
			names = append(names, file.Name())
		}
	}

	// Files are read in parallel, items are added in the file name order.
	items := make([]*orderedmap.OrderedMap, len(names))
	itemErrs := make([]error, len(names))
	grp := &errgroup.Group{}
	grp.SetLimit(readConcurrency)
	for i, name := range names {
		i, name := i, name
		grp.Go(func() error {
			items[i], itemErrs[i] = l.loadItem(filepath.Join(configDir, name))
			return nil
		})
	}
	_ = grp.Wait()

	errs := errors.NewMultiError()
	for i, name := range names {
		if itemErrs[i] != nil {
			errs.Append(itemErrs[i])
			continue
		}
		site.Active.Add(site.NewItem(strings.TrimSuffix(name, FileExtension), items[i]))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	model.ComputeDependents(site.Active)

	l.logger.
		With(attribute.Int("extensions.count", len(site.Extensions)), attribute.Int("config.count", site.Active.Len())).
		Infof(ctx, `loaded site snapshot "%s"`, dir)
	return site, nil
}

func (l *Loader) loadItem(path string) (*orderedmap.OrderedMap, error) {
	content, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, errors.Errorf(`cannot read config file "%s": %w`, path, err)
	}

	data, err := yaml.DecodeOrderedMap(content)
	if err != nil {
		return nil, errors.PrefixErrorf(err, `config file "%s" is not valid`, path)
	}
	return data, nil
}

func (l *Loader) loadManifest(ctx context.Context, dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	content, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, errors.Errorf(`cannot read site manifest "%s": %w`, path, err)
	}

	manifest := &Manifest{}
	if err := yaml.Decode(content, manifest); err != nil {
		return nil, errors.PrefixErrorf(err, `site manifest "%s" is not valid`, path)
	}
	if err := l.validator.Validate(ctx, manifest); err != nil {
		return nil, errors.PrefixErrorf(err, `site manifest "%s" is not valid`, path)
	}
	return manifest, nil
}
