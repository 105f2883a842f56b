package app

import "fmt"

// Build metadata injected with
//
//	go build -ldflags "-X github.com/heartmarshall/myenglish-vocab/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns the version string used in startup logs and /health.
func BuildVersion() string {
	return fmt.Sprintf("%s+%s (built %s)", Version, shortCommit(Commit), BuildTime)
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
