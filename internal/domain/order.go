package domain

import (
	"strconv"
	"time"
)

const (
	// OrderIDPrefix prefixes generated order identifiers.
	OrderIDPrefix = "O"
	// TimestampLayout is the persisted layout of Order.Timestamp.
	TimestampLayout = "2006-01-02 15:04:05"
)

// Order records stock received from a supplier into inventory
type Order struct {
	ID         string
	ProductID  string
	Quantity   int
	Timestamp  time.Time
	SupplierID string
}

// NewOrder creates an order for a positive quantity
func NewOrder(id, productID, supplierID string, quantity int, at time.Time) (*Order, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	return &Order{
		ID:         id,
		ProductID:  productID,
		Quantity:   quantity,
		Timestamp:  at.Truncate(time.Second),
		SupplierID: supplierID,
	}, nil
}

// Fields returns the order in persisted column order:
// id, productId, quantity, timestamp, supplierId.
func (o Order) Fields() []string {
	return []string{o.ID, o.ProductID, strconv.Itoa(o.Quantity), o.Timestamp.Format(TimestampLayout), o.SupplierID}
}
