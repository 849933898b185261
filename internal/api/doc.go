// Package api implements the HTTP surface for Quadbot Core.
//
// This package provides:
//   - The robots_control tool endpoint for LLM function-calling layers
//     (POST invokes a dispatch, GET returns the function descriptor)
//   - REST endpoints for robot metadata CRUD
//   - A health endpoint with per-component detail
//   - Middleware stack (request ID, logging, recovery, CORS, body limit)
//
// # Architecture
//
// The API server sits between the orchestration layer and the command core.
// Tool calls flow through the dispatcher onto MQTT; the registry endpoints
// manage enrollment metadata only and never gate dispatch.
//
// The server follows the same lifecycle pattern as other components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
