// Package module defines the contract every API module satisfies and a registry for their ports
package module

import (
	phttp "postpilot/internal/platform/net/http"
)

// Module lives apart from modkit so a module's own ports type can import it without a cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
