// Package version reports the build version of dock binaries.
//
// Version and commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/dock/version.Version=1.0.0" ./cmd/dockctl
//
// When they are not set, the VCS stamp from runtime/debug is used.
package version
