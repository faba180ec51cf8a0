// Package buildinfo carries release metadata stamped in at link time:
//
//	go build -ldflags "-X github.com/finmerge/finmerge/internal/buildinfo.Version=v1.2.0"
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
