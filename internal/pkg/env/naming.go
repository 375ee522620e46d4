package env

import (
	"strings"

	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

// NamingConvention maps flag names to ENV names.
type NamingConvention struct {
	prefix string
}

func NewNamingConvention(prefix string) *NamingConvention {
	return &NamingConvention{prefix: prefix}
}

// FlagToEnv converts flag name to ENV variable name,
// for example "listen-address" -> "DINO_LISTEN_ADDRESS".
func (n *NamingConvention) FlagToEnv(flagName string) string {
	if len(flagName) == 0 {
		panic(errors.New("flag name cannot be empty"))
	}
	return n.prefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

func Files() []string {
	// https://github.com/bkeepers/dotenv#what-other-env-files-can-i-use
	return []string{
		".env.local",
		".env",
	}
}
