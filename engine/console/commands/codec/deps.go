// Package codec provides the CLI commands computing selectors and encoding and decoding
// call-data.
package codec

import (
	"github.com/smartcontractkit/deal-console/engine/console/environment"
)

// Deps holds the injectable dependencies for codec commands.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// EnvironmentLoader loads the interface loader and codec settings.
	// Default: environment.DefaultLoader
	EnvironmentLoader environment.LoaderFunc
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.EnvironmentLoader == nil {
		d.EnvironmentLoader = environment.DefaultLoader
	}
}
