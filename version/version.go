// Package version identifies the itl2py build. The generator string ends up
// in generation manifests so that check can tell which build wrote an
// output tree.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set at build time via ldflags.
var (
	Version    = "dev"
	CommitHash = "dev"
	BuildTime  = "unknown"
)

// Info is the build of the running binary.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
	// Generator is what manifests record in generator.
	Generator string `json:"generator"`
}

// Get returns the running build.
func Get() Info {
	info := Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	info.Generator = info.generator()
	return info
}

// generator is "itl2py/<version>", plus "+<commit>" for builds that know
// their commit.
func (i Info) generator() string {
	g := "itl2py/" + strings.TrimPrefix(i.Version, "v")
	if commit := i.shortCommit(); commit != "" {
		g += "+" + commit
	}
	return g
}

func (i Info) shortCommit() string {
	if i.CommitHash == "" || i.CommitHash == "dev" {
		return ""
	}
	if len(i.CommitHash) > 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

func (i Info) String() string {
	return fmt.Sprintf("%s (built %s)", i.generator(), i.BuildTime)
}

// SameGenerator reports whether a manifest's generator string was written
// by this build. Development builds only match themselves exactly.
func (i Info) SameGenerator(recorded string) bool {
	return recorded == i.generator()
}
