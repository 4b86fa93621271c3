// Package buildinfo carries the version metadata stamped into release
// binaries. The release build injects all three variables with ldflags:
//
//	go build -ldflags "-X github.com/DaveyUS/gridkit/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/DaveyUS/gridkit/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/DaveyUS/gridkit/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Development builds report "dev" with no commit or date.
package buildinfo

import "fmt"

var (
	// Version is the semantic version, "dev" when not stamped.
	Version = "dev"

	// Commit is the git commit SHA the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String returns the build information on three lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
