// Package bundle stores bundles as YAML files, one file per bundle.
// The default bundle is always available, even if its file does not exist.
package bundle

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/keboola/config-features/internal/pkg/encoding/yaml"
	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
	"github.com/keboola/config-features/internal/pkg/validator"
)

const FileExtension = ".yml"

type Repository struct {
	fs        afero.Fs
	dir       string
	validator *validator.Validator
}

func NewRepository(fs afero.Fs, dir string, v *validator.Validator) *Repository {
	return &Repository{fs: fs, dir: dir, validator: v}
}

// Get loads the bundle. An empty "assignments" key means the default settings.
func (r *Repository) Get(ctx context.Context, machineName string) (*model.Bundle, bool, error) {
	path := r.path(machineName)
	content, err := afero.ReadFile(r.fs, path)
	switch {
	case err != nil && os.IsNotExist(err):
		if machineName == model.DefaultBundleName {
			return model.NewDefaultBundle(), true, nil
		}
		return nil, false, nil
	case err != nil:
		return nil, false, errors.Errorf(`cannot read bundle file "%s": %w`, path, err)
	}

	bundle := &model.Bundle{}
	if err := yaml.Decode(content, bundle); err != nil {
		return nil, false, errors.PrefixErrorf(err, `bundle file "%s" is not valid`, path)
	}
	if bundle.MachineName == "" {
		bundle.MachineName = machineName
	}
	if bundle.MachineName != machineName {
		return nil, false, errors.Errorf(`bundle file "%s" contains machine name "%s"`, path, bundle.MachineName)
	}
	if len(bundle.Assignments) == 0 {
		bundle.Assignments = model.DefaultAssignments()
	}
	if err := r.validator.Validate(ctx, bundle); err != nil {
		return nil, false, errors.PrefixErrorf(err, `bundle file "%s" is not valid`, path)
	}

	return bundle, true, nil
}

func (r *Repository) Save(ctx context.Context, bundle *model.Bundle) error {
	if err := r.validator.Validate(ctx, bundle); err != nil {
		return errors.PrefixErrorf(err, `bundle "%s" is not valid`, bundle.MachineName)
	}

	content, err := yaml.Encode(bundle)
	if err != nil {
		return err
	}

	if err := r.fs.MkdirAll(r.dir, 0o755); err != nil {
		return errors.Errorf(`cannot create directory "%s": %w`, r.dir, err)
	}
	path := r.path(bundle.MachineName)
	if err := afero.WriteFile(r.fs, path, content, 0o644); err != nil {
		return errors.Errorf(`cannot write bundle file "%s": %w`, path, err)
	}
	return nil
}

// List returns all bundles sorted by the machine name, the default bundle is always included.
func (r *Repository) List(ctx context.Context) ([]*model.Bundle, error) {
	names := map[string]bool{model.DefaultBundleName: true}
	files, err := afero.ReadDir(r.fs, r.dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Errorf(`cannot read directory "%s": %w`, r.dir, err)
	}
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), FileExtension) {
			names[strings.TrimSuffix(file.Name(), FileExtension)] = true
		}
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	errs := errors.NewMultiError()
	var out []*model.Bundle
	for _, name := range sorted {
		bundle, found, err := r.Get(ctx, name)
		if err != nil {
			errs.Append(err)
			continue
		}
		if found {
			out = append(out, bundle)
		}
	}
	return out, errs.ErrorOrNil()
}

func (r *Repository) path(machineName string) string {
	return filepath.Join(r.dir, machineName+FileExtension)
}
