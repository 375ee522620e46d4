package configmap

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

type HelpError struct {
	Help string
}

func (h HelpError) Error() string {
	return "help requested"
}

func newHelpError(name string, flags *pflag.FlagSet, cfg BindSpec) HelpError {
	var b strings.Builder

	b.WriteString(fmt.Sprintf(`Usage of "%s":`, name))
	b.WriteString("\n")
	b.WriteString(flags.FlagUsages())

	if cfg.EnvNaming != nil && cfg.Envs != nil {
		b.WriteString("\n")
		b.WriteString("Configuration source priority: 1. flag, 2. ENV, 3. config file\n")
		b.WriteString(fmt.Sprintf("For example, the flag \"--foo-bar\" becomes the \"%s\" ENV.\n", cfg.EnvNaming.FlagToEnv("foo-bar")))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Use \"--%s\" flag to specify a YAML configuration file, it can be used multiple times.\n", ConfigFileFlag))

	return HelpError{Help: b.String()}
}
