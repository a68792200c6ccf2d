// Package interfaces provides the CLI commands browsing versioned contract interfaces.
package interfaces

import (
	"github.com/smartcontractkit/deal-console/engine/console/environment"
)

// Deps holds the injectable dependencies for interfaces commands.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// EnvironmentLoader loads the interface loader.
	// Default: environment.DefaultLoader
	EnvironmentLoader environment.LoaderFunc
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.EnvironmentLoader == nil {
		d.EnvironmentLoader = environment.DefaultLoader
	}
}
