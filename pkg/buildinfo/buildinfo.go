// Package buildinfo carries version metadata stamped at build time.
//
// Release builds override the defaults with ldflags:
//
//	go build -ldflags "\
//	    -X github.com/Phlair/civ7-modding-tools-sub000/pkg/buildinfo.Version=$(git describe --tags) \
//	    -X github.com/Phlair/civ7-modding-tools-sub000/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/Phlair/civ7-modding-tools-sub000/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Defaults identify a from-source build without ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the build metadata for plain output.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template for the root command.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
