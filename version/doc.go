// Package version reports the version and build metadata of glutils.
//
// Version, Commit and Date are set at build time with
//
//	-ldflags "-X github.com/glamus/glamus-utils/version.Version=v1.2.0 -X github.com/glamus/glamus-utils/version.Commit=abc1234"
//
// When they are left at their defaults, the values recorded by the Go
// toolchain in debug.ReadBuildInfo are used instead.
package version
