//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Tools used by the repository:
// - github.com/matryer/moq (service consumer mocks, see go:generate lines in tests)
// - github.com/pressly/goose/v3/cmd/goose (manual migration runs; binaries migrate on start
//   when database.auto_migrate is set)
