// In file: cmd/gateway/version.go
package main

import (
	"fmt"
	"runtime"

	compversion "github.com/dileep-u-k/assistant-gateway/internal/version"
)

// Set at build time with -ldflags "-X main.version=... -X main.gitCommit=...".
var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

type BuildInfo struct {
	Version    string `json:"version"`
	BuildDate  string `json:"build_date"`
	GitCommit  string `json:"git_commit"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
	Components string `json:"components"`
}

func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:    version,
		BuildDate:  buildDate,
		GitCommit:  gitCommit,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Components: compversion.Summary(),
	}
}
