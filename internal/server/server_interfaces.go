// Package server provides HTTP server implementation for the BlogSpace API.
// This file defines the small interfaces the router depends on, so routes can
// be exercised without a database or cache.
package server

import (
	"context"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/middleware"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	// HealthCheck returns an error if the dependency is unreachable or unhealthy
	HealthCheck(ctx context.Context) error
}

// HealthCheckFunc adapts a function to the HealthChecker interface.
type HealthCheckFunc func(ctx context.Context) error

// HealthCheck calls f(ctx).
func (f HealthCheckFunc) HealthCheck(ctx context.Context) error {
	return f(ctx)
}

// namedHealthCheck is one dependency probed by GET /health.
type namedHealthCheck struct {
	name    string
	checker HealthChecker
}

// OwnerLoaders resolve the owners checked by the ownership gate.
type OwnerLoaders struct {
	// Posts resolves posts.author_id
	Posts middleware.OwnerLoader

	// Comments resolves comments.user_id
	Comments middleware.OwnerLoader
}
