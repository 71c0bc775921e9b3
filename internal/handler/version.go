package handler

import (
	"encoding/json"
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
)

// VersionInfo describes the running engine build.
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GitCommit string `json:"git_commit,omitempty"`
}

// Version is overridden at build time via -ldflags "-X ...handler.Version=v1.2.3".
var Version = "dev"

// HandleVersion reports the deployed engine version so operators can
// confirm what a host is running without shell access.
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := VersionInfo{
			Version:   resolveVersion(),
			GoVersion: runtime.Version(),
			GitCommit: vcsRevision(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(info)
	}
}

func resolveVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if envVersion := os.Getenv("VERSION"); envVersion != "" {
		return envVersion
	}
	return "dev"
}

// vcsRevision pulls the commit hash stamped by the Go toolchain, if any.
func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
