package domain

import "math"

// MaxProductNameLength is the column limit for product names, in characters.
const MaxProductNameLength = 100

// Product is an item that can be added to orders.
type Product struct {
	ID          int64
	ProductName string
	// Price is expected to be non-negative but is not enforced.
	Price float64
}

// NewProduct builds a Product and validates it.
func NewProduct(name string, price float64) (*Product, error) {
	product := &Product{
		ProductName: name,
		Price:       price,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate checks the Product against the column limits.
func (p *Product) Validate() error {
	verr := &ValidationError{}
	checkLength(verr, "product_name", p.ProductName, MaxProductNameLength)
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		verr.Add("price", MsgNotNumber)
	}
	return verr.OrNil()
}

// ProductPatch is a partial update of a Product.
type ProductPatch struct {
	ProductName *string
	Price       *float64
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.ProductName == nil && p.Price == nil
}

// Apply merges the present fields of p onto product.
func (p ProductPatch) Apply(product *Product) {
	if p.ProductName != nil {
		product.ProductName = *p.ProductName
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
}
