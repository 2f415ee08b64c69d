// Package api implements the HTTP handlers of the shop API.
//
// Handlers decode and validate requests, call the services, and write JSON
// responses through the helpers in api/shared. Errors become status codes in
// exactly one place, MapErrorToStatusCode.
package api
