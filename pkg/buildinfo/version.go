// Package buildinfo holds the version stamped into the depgraphs binary.
//
// Release builds override the defaults with linker flags:
//
//	go build -ldflags "-X github.com/matzehuels/depgraphs/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/depgraphs/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/depgraphs/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/depgraphs
//
// Local builds report "dev".
package buildinfo

import "fmt"

// Linker-set build metadata.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template is the cobra version template printed by "depgraphs --version".
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
