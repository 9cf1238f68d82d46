package internal

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/rs/zerolog"
)

var sensitiveRegex = regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)

func Version() string {
	return versioninfo.Short()
}

func ShowVersion(logger zerolog.Logger) {
	logger.Info().Str("version", Version()).Msg("Version")
}

// EnvironmentVars logs every environment variable starting with prefix,
// masking the values of anything that looks like a credential.
func EnvironmentVars(logger zerolog.Logger, prefix string) {
	logger.Info().Str("prefix", prefix).Msg("Environment variables")

	for _, kv := range filterEnviron(os.Environ(), prefix) {
		if sensitiveRegex.MatchString(kv[0]) {
			logger.Info().Str("name", kv[0]).Str("value", "********").Msg("  env")
		} else {
			logger.Info().Str("name", kv[0]).Str("value", kv[1]).Msg("  env")
		}
	}
}

func filterEnviron(environ []string, prefix string) [][2]string {
	vars := make([][2]string, 0, len(environ))
	for _, entry := range environ {
		kv := strings.SplitN(entry, "=", 2)
		if len(kv) != 2 || !strings.HasPrefix(kv[0], prefix) {
			continue
		}
		vars = append(vars, [2]string{kv[0], kv[1]})
	}
	sort.Slice(vars, func(i, j int) bool {
		return vars[i][0] < vars[j][0]
	})
	return vars
}
