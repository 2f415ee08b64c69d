package domain

import "time"

// Order belongs to exactly one User and holds a set of Products.
// An order has no status: its only transitions are product set changes.
type Order struct {
	ID        int64
	OrderDate time.Time
	UserID    int64

	// User and Products are populated when the order is loaded with its
	// relations; they are ignored on insert.
	User     *User
	Products []Product
}

// NewOrder builds an Order for userID. A zero orderDate defaults to now.
// The date is kept in UTC at microsecond precision, the resolution the
// database stores.
func NewOrder(userID int64, orderDate time.Time) (*Order, error) {
	if userID <= 0 {
		return nil, NewValidationError("user_id", MsgInvalidValue)
	}

	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	return &Order{
		UserID:    userID,
		OrderDate: orderDate.UTC().Truncate(time.Microsecond),
		Products:  []Product{},
	}, nil
}

// HasProduct reports whether productID is already part of the order.
func (o *Order) HasProduct(productID int64) bool {
	for _, p := range o.Products {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// UniqueProductIDs drops repeated ids, keeping the first occurrence order.
func UniqueProductIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
