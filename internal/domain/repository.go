package domain

import "context"

// ProductRepository defines the contract for product storage
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
	IsUniqueID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// SupplierRepository defines the contract for supplier storage
type SupplierRepository interface {
	Create(ctx context.Context, supplier *Supplier) error
	FindByID(ctx context.Context, id string) (*Supplier, error)
	FindByName(ctx context.Context, name string) (*Supplier, error)
	FindAll(ctx context.Context) ([]*Supplier, error)
	IsUniqueID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// OrderRepository defines the contract for order storage
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	FindAll(ctx context.Context) ([]*Order, error)
	NextID(ctx context.Context) (string, error)
}

// SaleRepository defines the contract for sale storage
type SaleRepository interface {
	Create(ctx context.Context, sale *Sale) error
	FindAll(ctx context.Context) ([]*Sale, error)
	NextID(ctx context.Context) (string, error)
}
