package configmap

import (
	"strings"

	"github.com/umisama/go-regexpcache"
)

// fieldToFlagName converts the config key path to the flag name, for example "http.listenAddress" -> "http-listen-address".
func fieldToFlagName(fieldName string) string {
	str := regexpcache.MustCompile(`[A-Z]+`).ReplaceAllString(fieldName, "-$0")
	str = regexpcache.MustCompile(`[-.\s]+`).ReplaceAllString(str, "-")
	str = strings.Trim(str, "-")
	str = strings.ToLower(str)
	return str
}
