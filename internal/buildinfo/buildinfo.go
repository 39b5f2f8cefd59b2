package buildinfo

import (
	"fmt"
	"runtime/debug"
)

const Graffiti = " _                 ____     _ \n| | ___ __  _ __ |___ \\ __| |\n| |/ / '_ \\| '_ \\  __) / _` |\n|   <| | | | | | |/ __/ (_| |\n|_|\\_\\_| |_|_| |_|_____\\__,_|\n\n"

// Set with -ldflags "-X github.com/go-sod/knn2d/internal/buildinfo.BuildTag=...".
var (
	BuildTag string
	Name     = "knn2d"
	Time     string
)

const devel = "(devel)"

// Info describes the running binary.
type Info struct {
	Name      string
	Tag       string
	Time      string
	Revision  string
	GoVersion string
}

// Get prefers the ldflags values and falls back to what the Go toolchain
// embedded in the binary.
func Get() Info {
	bi, ok := debug.ReadBuildInfo()
	return infoFrom(bi, ok)
}

func infoFrom(bi *debug.BuildInfo, ok bool) Info {
	info := Info{Name: Name, Tag: BuildTag, Time: Time}
	if ok {
		info.GoVersion = bi.GoVersion
		if info.Tag == "" && bi.Main.Version != "" {
			info.Tag = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Revision = s.Value
			case "vcs.time":
				if info.Time == "" {
					info.Time = s.Value
				}
			}
		}
	}
	if info.Tag == "" {
		info.Tag = devel
	}
	return info
}

func (i Info) String() string {
	s := i.Name + " " + i.Tag
	if i.Revision != "" {
		rev := i.Revision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		s += fmt.Sprintf(" (%s)", rev)
	}
	if i.Time != "" {
		s += ", built " + i.Time
	}
	if i.GoVersion != "" {
		s += ", " + i.GoVersion
	}
	return s
}
