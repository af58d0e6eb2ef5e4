// Package buildinfo holds release metadata stamped at link time, e.g.
//
//	go build -ldflags "-X github.com/aidanlsb/taskmark/internal/buildinfo.Version=v0.4.0"
//
// Development builds leave them empty.
package buildinfo

var (
	Version string
	Commit  string
	Date    string
)
