package configmap

import (
	"reflect"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

const (
	configKeyTag       = "configKey"
	configUsageTag     = "configUsage"
	configShorthandTag = "configShorthand"
	tagValuesSeparator = ","
)

// flagToKey maps a flag name to the dotted config key.
type flagToKey map[string]string

func MustGenerateFlags(fs *pflag.FlagSet, v any) {
	if _, err := GenerateFlags(fs, v); err != nil {
		panic(err)
	}
}

// GenerateFlags generates FlagSet from the provided configuration structure.
// Each field tagged by "configKey" tag is mapped to a flag, the current field value is the flag default.
// Field can optionally have the "configUsage" and "configShorthand" tags.
func GenerateFlags(fs *pflag.FlagSet, v any) (map[string]string, error) {
	value := reflect.ValueOf(v)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, errors.Errorf(`cannot generate flags from type "%s": it is not a struct or a pointer to a struct`, value.Type().String())
	}

	mapping := make(flagToKey)
	if err := generateFlags(fs, value, nil, mapping); err != nil {
		return nil, err
	}
	return mapping, nil
}

func generateFlags(fs *pflag.FlagSet, value reflect.Value, path []string, mapping flagToKey) error {
	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag, found := field.Tag.Lookup(configKeyTag)
		if !found || !field.IsExported() {
			continue
		}

		parts := strings.Split(tag, tagValuesSeparator)
		name := parts[0]
		fieldValue := value.Field(i)

		// Embedded struct
		if name == "" && len(parts) == 2 && parts[1] == "squash" {
			if err := generateFlags(fs, fieldValue, path, mapping); err != nil {
				return err
			}
			continue
		}
		if name == "" || name == "-" {
			continue
		}

		fieldPath := append(append([]string(nil), path...), name)
		if fieldValue.Kind() == reflect.Struct {
			if err := generateFlags(fs, fieldValue, fieldPath, mapping); err != nil {
				return err
			}
			continue
		}

		key := strings.Join(fieldPath, ".")
		flagName := fieldToFlagName(key)
		shorthand := field.Tag.Get(configShorthandTag)
		usage := field.Tag.Get(configUsageTag)

		switch v := fieldValue.Interface().(type) {
		case time.Duration:
			fs.DurationP(flagName, shorthand, v, usage)
		case int:
			fs.IntP(flagName, shorthand, v, usage)
		case int64:
			fs.Int64P(flagName, shorthand, v, usage)
		case uint:
			fs.UintP(flagName, shorthand, v, usage)
		case float64:
			fs.Float64P(flagName, shorthand, v, usage)
		case bool:
			fs.BoolP(flagName, shorthand, v, usage)
		case string:
			fs.StringP(flagName, shorthand, v, usage)
		case []string:
			fs.StringSliceP(flagName, shorthand, v, usage)
		default:
			if text := newTextValue(fieldValue); text != nil {
				fs.VarP(text, flagName, shorthand, usage)
				break
			}
			// Custom string types, for example an enum
			if fieldValue.Kind() == reflect.String {
				fs.StringP(flagName, shorthand, fieldValue.String(), usage)
				break
			}
			return errors.Errorf(`unexpected type "%T" of the field "%s"`, v, key)
		}

		mapping[flagName] = key
	}
	return nil
}
