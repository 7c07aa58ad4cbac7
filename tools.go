//go:build tools

package tools

// This file tracks CLI tool dependencies used during development.
// It is not compiled into the binary.
//
// - github.com/matryer/moq: go:generate mocks in internal/service/progress
// - github.com/pressly/goose/v3/cmd/goose: ad-hoc migration authoring; cmd/migrate
//   applies the embedded set
