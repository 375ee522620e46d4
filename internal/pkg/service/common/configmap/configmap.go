// Package configmap binds a configuration structure to flags, ENVs and config files.
//
// Fields are mapped by the "configKey" tag, for example the "listenAddress" field
// in the "http" struct is mapped to the "--http-listen-address" flag
// and to the "<PREFIX>HTTP_LISTEN_ADDRESS" ENV.
package configmap

import (
	"context"
	"io"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/keboola/config-features/internal/pkg/env"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
	"github.com/keboola/config-features/internal/pkg/validator"
)

const (
	ConfigFileFlag = "config-file"
	HelpFlag       = "help"
)

// ValueWithValidation is a configuration structure with its own normalization and validation.
type ValueWithValidation interface {
	Normalize()
	Validate() error
}

type BindSpec struct {
	// Args with the app name at the first position, for example os.Args.
	Args      []string
	EnvNaming *env.NamingConvention
	Envs      env.Provider
	// Fs used to read config files, the OS filesystem is used if nil.
	Fs        afero.Fs
	Validator *validator.Validator
}

// Bind sets the target fields from flags, ENVs and config files.
// Priority: 1. flag, 2. ENV, 3. config file, 4. the original field value.
func Bind(ctx context.Context, spec BindSpec, target any) error {
	appName := ""
	var args []string
	if len(spec.Args) > 0 {
		appName = spec.Args[0]
		args = spec.Args[1:]
	}

	flags := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	mapping, err := GenerateFlags(flags, target)
	if err != nil {
		return err
	}
	flags.StringSlice(ConfigFileFlag, nil, "Path to a YAML configuration file.")
	flags.BoolP(HelpFlag, "h", false, "Print help.")

	if err := flags.Parse(args); err != nil {
		return errors.PrefixError(err, "cannot parse flags")
	}
	if help, _ := flags.GetBool(HelpFlag); help {
		return newHelpError(appName, flags, spec)
	}

	v := viper.New()
	if spec.Fs != nil {
		v.SetFs(spec.Fs)
	}

	configFiles, _ := flags.GetStringSlice(ConfigFileFlag)
	for _, path := range configFiles {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return errors.Errorf(`cannot read config file "%s": %w`, path, err)
		}
	}

	errs := errors.NewMultiError()
	for flagName, key := range mapping {
		flag := flags.Lookup(flagName)
		if !flag.Changed && spec.Envs != nil && spec.EnvNaming != nil {
			if value, found := spec.Envs.Lookup(spec.EnvNaming.FlagToEnv(flagName)); found {
				v.Set(key, value)
				continue
			}
		}
		if err := v.BindPFlag(key, flag); err != nil {
			errs.Append(err)
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}

	err = v.Unmarshal(target, func(c *mapstructure.DecoderConfig) {
		c.TagName = configKeyTag
		c.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.TextUnmarshallerHookFunc(),
		)
	})
	if err != nil {
		return errors.PrefixError(err, "invalid configuration")
	}

	if value, ok := target.(ValueWithValidation); ok {
		value.Normalize()
		if err := value.Validate(); err != nil {
			return err
		}
	}
	if spec.Validator != nil {
		if err := spec.Validator.Validate(ctx, target); err != nil {
			return err
		}
	}
	return nil
}
