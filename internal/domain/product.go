package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxPriceScale is the largest number of decimal places a price may carry
const MaxPriceScale = 8

// Product represents a stocked item
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
}

// NewProduct builds a product from raw form input, validating price then stock
func NewProduct(id, name, description, priceText, stockText string) (*Product, error) {
	price, err := ParsePrice(priceText)
	if err != nil {
		return nil, err
	}

	stock, err := ParseStock(stockText)
	if err != nil {
		return nil, err
	}

	return &Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
	}, nil
}

// ParsePrice parses a strictly positive decimal price written in plain
// notation with at most MaxPriceScale decimal places
func ParsePrice(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: price cannot be empty", ErrInvalidPrice)
	}
	if strings.ContainsAny(text, "eE") {
		return decimal.Decimal{}, fmt.Errorf("%w: %q must not use exponent notation", ErrInvalidPrice, text)
	}

	price, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number", ErrInvalidPrice, text)
	}
	if !price.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: price must be a positive number", ErrInvalidPrice)
	}
	if price.Exponent() < -MaxPriceScale {
		return decimal.Decimal{}, fmt.Errorf("%w: price has more than %d decimal places", ErrInvalidPrice, MaxPriceScale)
	}
	return price, nil
}

// ParseStock parses a non-negative integer stock level
func ParseStock(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("%w: stock cannot be empty", ErrInvalidStock)
	}

	stock, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidStock, text)
	}
	if stock < 0 {
		return 0, fmt.Errorf("%w: stock must be a non-negative integer", ErrInvalidStock)
	}
	return stock, nil
}

// FormatPrice renders a price keeping the precision it was entered with,
// so "10.00" is written back as "10.00".
func FormatPrice(price decimal.Decimal) string {
	if exp := price.Exponent(); exp < 0 {
		return price.StringFixed(-exp)
	}
	return price.String()
}

// Restock adds received units to the stock level, refusing quantities the
// stock counter cannot hold
func (p *Product) Restock(quantity int) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	if quantity > math.MaxInt-p.Stock {
		return fmt.Errorf("%w: %d units would overflow current stock %d", ErrInvalidQuantity, quantity, p.Stock)
	}
	p.Stock += quantity
	return nil
}

// Sell removes sold units, refusing to take the stock level below zero
func (p *Product) Sell(quantity int) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	if quantity > p.Stock {
		return fmt.Errorf("%w: current stock is %d", ErrInsufficientStock, p.Stock)
	}
	p.Stock -= quantity
	return nil
}

// Fields returns the product in persisted column order:
// id, name, description, price, stock.
func (p Product) Fields() []string {
	return []string{p.ID, p.Name, p.Description, FormatPrice(p.Price), strconv.Itoa(p.Stock)}
}

// ValidateQuantity checks that an ordered or sold quantity is a positive integer
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	return nil
}
