package model

import (
	"gopkg.in/yaml.v3"

	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

// Required defines configuration which always stays in the package.
// In YAML it is either a bool, true means all config of the extension, or a list of config names.
type Required struct {
	All   bool
	Items []string
}

func RequiredAll() Required {
	return Required{All: true}
}

func RequiredItems(items ...string) Required {
	return Required{Items: items}
}

func (r Required) IsRequired() bool {
	return r.All || len(r.Items) > 0
}

// Filter returns required names from the extension config.
func (r Required) Filter(extensionConfig []string) []string {
	if r.All {
		return extensionConfig
	}
	return r.Items
}

func (r *Required) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var all bool
		if err := node.Decode(&all); err != nil {
			return errors.Errorf(`"required" must be a bool or a list of config names: %w`, err)
		}
		*r = Required{All: all}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return errors.Errorf(`"required" must be a bool or a list of config names: %w`, err)
		}
		*r = Required{Items: items}
		return nil
	default:
		return errors.New(`"required" must be a bool or a list of config names`)
	}
}

func (r Required) MarshalYAML() (any, error) {
	if !r.All && len(r.Items) > 0 {
		return r.Items, nil
	}
	return r.All, nil
}
