//go:build tools

// Package tools pins code generators used by go:generate so their versions
// are tracked in go.mod.
package tools

import (
	// mockgen regenerates internal/mocks from the ports interfaces.
	_ "go.uber.org/mock/mockgen"
)

// Other development tools (install via `go install`, not tracked):
//
// Air - live reload while editing templates under frontend/ with DEV=true
//   Install: go install github.com/air-verse/air@v1.63.0
//   Docs: https://github.com/air-verse/air
