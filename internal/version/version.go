package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the luaufmt CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored renders a semantic version with each numeric part in its own
// colour. Anything after the patch number is left plain.
func Colored(v string) string {
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return v
	}
	return fmt.Sprintf("%s.%s.%s%s",
		versionMajorColor.Sprint(parts[0]),
		versionMinorColor.Sprint(parts[1]),
		versionPatchColor.Sprint(parts[2]),
		suffix)
}
