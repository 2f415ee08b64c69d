// Package store defines interfaces for persisting users, products and orders,
// the transaction helpers that scope a request's work to one transaction, and
// the sentinel errors every store implementation returns. Business rules stay
// independent of the database behind these interfaces.
package store
