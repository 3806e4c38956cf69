// Package buildinfo holds release metadata stamped into odfkit binaries.
package buildinfo

// Set with -ldflags "-X github.com/aidanlsb/odfkit/internal/buildinfo.Version=..."
// by the release build. Empty for go install and local builds, in which case
// the version command falls back to runtime/debug build info.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
