// Package service provides the application-level operations over users,
// products and orders.
//
// Every operation runs inside exactly one database transaction obtained from a
// store.Transactor, so a request's reads and writes commit or roll back
// together. Services return store and service sentinel errors wrapped with
// context; the API layer maps them to HTTP status codes.
package service
