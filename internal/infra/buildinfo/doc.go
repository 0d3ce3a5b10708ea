// Package buildinfo provides build information for the envconfig CLI.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/Redblueflame/env-config/internal/infra/buildinfo.Version=v1.0.0"
//
// Without ldflags, the module version and VCS stamp recorded by the Go
// toolchain are used.
package buildinfo
