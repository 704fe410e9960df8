// Package module holds the module contract and the port registry used to
// cross wire modules at startup
package module

import (
	phttp "namematch/internal/platform/net/http"
)

// Module is a mountable slice of the API
type Module interface {
	Name() string
	Prefix() string
	// Ports returns the ports this module provides to others, or nil
	Ports() any
	MountRoutes(r phttp.Router)
}
