// Package version holds build information set through -ldflags.
package version

import "fmt"

// Version is the release version.
var Version = "0.1.0"

// GitCommit is the git commit hash.
var GitCommit = "unknown"

// BuildDate is the build date.
var BuildDate = "unknown"

// String formats all build fields on one line.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
