package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "mathctx", resolveVersion(version, buildInfoVersion()))
	},
}

// resolveVersion prefers the ldflags version, then the module version from
// `go install`. Anything that is not semver is reported as a dev build.
func resolveVersion(linked, module string) string {
	for _, v := range []string{linked, module} {
		if v != "" && v[0] != 'v' {
			v = "v" + v
		}
		if semver.IsValid(v) {
			if semver.Prerelease(v) != "" {
				return v + " (pre-release)"
			}
			return semver.Canonical(v)
		}
	}
	return "(devel)"
}

func buildInfoVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	return info.Main.Version
}
