// Package api provides the HTTP REST API for the devreg service.
//
// It exposes the authorized device registry over /api/devices and maps
// registry errors onto the HTTP error contract: validation failures become
// 400, missing devices 404, duplicate MAC addresses 409, and store failures
// 500 with a generic body.
//
// The server follows the same lifecycle pattern as the other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
