// Package appconfig binds the process-wide settings TTR reads from flags
// and environment variables (§6): workspace root override, alternate
// config path, log verbosity, local-build link mode, and color. It mirrors
// the teacher CLI's viper.AutomaticEnv + BindPFlag wiring in cmd/wl/main.go,
// generalized from a single WORKLINE_ prefix to the TTR_* variables named
// in §6.
package appconfig

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Init registers the TTR_* environment variables so viper.GetString("workspace")
// etc. resolve them once flags are bound with BindPFlag by the CLI layer.
func Init() {
	viper.SetEnvPrefix("TTR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Workspace resolves the --workspace flag / TTR_WORKSPACE env var, falling
// back to the empty string (cwd-based discovery applies).
func Workspace() string { return viper.GetString("workspace") }

// ConfigOverride resolves TTR_CONFIG, the alternate Config manifest path.
func ConfigOverride() string { return viper.GetString("config") }

// LogLevel resolves TTR_LOG (off|error|warn|info|debug|trace), defaulting
// to "info" when unset.
func LogLevel() string {
	if v := viper.GetString("log"); v != "" {
		return v
	}
	return "info"
}

// LocalBuild resolves TTR_LOCAL_BUILD: when set, the site builder emits
// file://-friendly relative links instead of root-absolute ones.
func LocalBuild() bool { return viper.GetBool("local-build") }

// NoColor resolves NO_COLOR directly from the environment since viper's
// TTR_ prefix would otherwise shadow this cross-tool convention.
func NoColor() bool { return os.Getenv("NO_COLOR") != "" }
