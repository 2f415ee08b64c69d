// Package middleware provides the HTTP middleware shared by every route:
// request tracing with a request-scoped logger, and panic recovery.
package middleware
