// Package domain contains the core business entities of the shop: users,
// products and orders, along with their validation rules and the partial
// update patches used by the PUT endpoints. It is independent of any storage
// or delivery mechanism.
package domain
