// Package redis wraps the go-redis client with connection helpers used by
// the delivery log storage.
//
// Connect retries the initial connection according to Config so the engine
// can start before Redis is ready. Healthcheck returns a probe function for
// readiness endpoints.
package redis
