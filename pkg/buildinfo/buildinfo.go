// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X github.com/mdtolinkedin/mdtolinkedin/pkg/buildinfo.Var=value"
// to "go build" or "go install".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/mdtolinkedin/mdtolinkedin/pkg/prog"
)

// Version identifies the version of mdtolinkedin. On development commits, it
// identifies the next release.
const Version = "0.3.0"

const defaultVersionSuffix = "-dev.unknown"

// VersionSuffix is appended to Version to build the full version string. When
// it is left at its default value, a suffix is derived from the VCS
// information embedded by the Go toolchain, if there is any.
var VersionSuffix = defaultVersionSuffix

// Reproducible identifies whether the build is reproducible. It can be set to
// "true" when building.
var Reproducible = "false"

// Type contains all the build information fields.
type Type struct {
	Version      string `json:"version"`
	GoVersion    string `json:"goversion"`
	Reproducible bool   `json:"reproducible"`
}

// Value contains all the build information.
var Value = Type{
	Version:      fullVersion(Version, VersionSuffix, debug.ReadBuildInfo),
	GoVersion:    runtime.Version(),
	Reproducible: Reproducible == "true",
}

func fullVersion(version, suffix string, readBuildInfo func() (*debug.BuildInfo, bool)) string {
	if suffix != defaultVersionSuffix {
		return version + suffix
	}
	bi, ok := readBuildInfo()
	if !ok {
		return version + defaultVersionSuffix
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		// Installed with "go install github.com/...@version".
		return strings.TrimPrefix(v, "v")
	}
	var revision, modified string
	var vcsTime time.Time
	for _, kv := range bi.Settings {
		switch kv.Key {
		case "vcs.revision":
			revision = kv.Value
		case "vcs.time":
			vcsTime, _ = time.Parse(time.RFC3339, kv.Value)
		case "vcs.modified":
			modified = kv.Value
		}
	}
	if len(revision) < 12 || vcsTime.IsZero() {
		return version + defaultVersionSuffix
	}
	v := fmt.Sprintf("%s-dev.0.%s-%s",
		version, vcsTime.UTC().Format("20060102150405"), revision[:12])
	if modified == "true" {
		v += "-dirty"
	}
	return v
}

// Program is the buildinfo subprogram.
type Program struct {
	version, buildinfo bool
	json               *bool
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.version, "version", false, "Show version and quit")
	fs.BoolVar(&p.buildinfo, "buildinfo", false, "Show build info and quit")
	p.json = fs.JSON()
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	switch {
	case p.buildinfo:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value))
		} else {
			fmt.Fprintln(fds[1], "Version:", Value.Version)
			fmt.Fprintln(fds[1], "Go version:", Value.GoVersion)
			fmt.Fprintln(fds[1], "Reproducible build:", Value.Reproducible)
		}
	case p.version:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value.Version))
		} else {
			fmt.Fprintln(fds[1], Value.Version)
		}
	default:
		return prog.ErrNextProgram
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
