// Package version reports the version of the running binary.
package version

import "runtime/debug"

// Version can be set at build time using something like:
// go build -ldflags "-X github.com/midi-editor/pianoroll/version.Version=$(git describe --dirty)"
var Version string

// Revision returns the short VCS revision the binary was built from, with a
// "-dirty" suffix when the working tree had modifications. It is empty when
// the build carries no VCS information.
func Revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var revision string
	modified := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision != "" && modified {
		revision += "-dirty"
	}
	return revision
}

// String returns Version if set, else the revision, else "devel".
func String() string {
	if Version != "" {
		return Version
	}
	if r := Revision(); r != "" {
		return r
	}
	return "devel"
}
