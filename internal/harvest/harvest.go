// Package harvest gathers the automatic provenance fields describing
// "this file, right now": who, when, where and with what tooling the
// write is happening. It is pure data collection with no knowledge of
// the lineage graph.
package harvest

import (
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampFormat is the lexical layout of harvested timestamps:
// local time with a numeric UTC offset.
const TimestampFormat = "2006-01-02 15:04:05-0700"

// Fields returns the automatic fields for one write. Fields whose
// source is unavailable (no login name, no hostname) are omitted
// rather than failing the write.
func Fields() map[string]any {
	fields := map[string]any{
		"timestamp":     time.Now().Format(TimestampFormat),
		"uname_os":      runtime.GOOS,
		"uname_machine": runtime.GOARCH,
		"go_version":    runtime.Version(),
		"invocation_id": uuid.NewString(),
	}

	if u, err := user.Current(); err == nil {
		fields["login"] = u.Username
	}
	if host, err := os.Hostname(); err == nil {
		fields["uname_host"] = host
	}
	if cwd, err := os.Getwd(); err == nil {
		fields["cwd"] = cwd
	}
	if len(os.Args) > 0 && os.Args[0] != "" {
		fields["script"] = filepath.Base(os.Args[0])
		fields["script_dir"] = filepath.Dir(os.Args[0])
		fields["commandline"] = strings.Join(os.Args[1:], " ")
	}

	if versions := moduleVersions(); len(versions) > 0 {
		if buf, err := json.Marshal(versions); err == nil {
			fields["package_version_dict"] = string(buf)
		}
	}

	return fields
}

// moduleVersions maps each dependency module to its version, read from
// the build info compiled into the binary.
func moduleVersions() map[string]string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	versions := map[string]string{info.Main.Path: info.Main.Version}
	for _, dep := range info.Deps {
		versions[dep.Path] = dep.Version
	}
	return versions
}
