package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// SaleIDPrefix prefixes generated sale identifiers.
	SaleIDPrefix = "S"
	// DateLayout is the persisted layout of sale period dates.
	DateLayout = "2006-01-02"
)

// Sale records units of a product sold over a period. ProductName is a
// snapshot taken when the sale was recorded.
type Sale struct {
	ID           string
	ProductID    string
	ProductName  string
	QuantitySold int
	StartDate    time.Time
	EndDate      time.Time
}

// NewSale creates a sale after checking the quantity and the period
func NewSale(id string, product *Product, quantity int, start, end time.Time) (*Sale, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := ValidatePeriod(start, end); err != nil {
		return nil, err
	}
	return &Sale{
		ID:           id,
		ProductID:    product.ID,
		ProductName:  product.Name,
		QuantitySold: quantity,
		StartDate:    start,
		EndDate:      end,
	}, nil
}

// ParseDate parses a calendar date in DateLayout
func ParseDate(text string) (time.Time, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD", ErrInvalidDate, text)
	}
	return date, nil
}

// ValidatePeriod rejects periods that end before they start
func ValidatePeriod(start, end time.Time) error {
	if end.Before(start) {
		return ErrInvalidDateRange
	}
	return nil
}

// Fields returns the sale in persisted column order:
// id, productId, productName, quantitySold, startDate, endDate.
func (s Sale) Fields() []string {
	return []string{
		s.ID,
		s.ProductID,
		s.ProductName,
		strconv.Itoa(s.QuantitySold),
		s.StartDate.Format(DateLayout),
		s.EndDate.Format(DateLayout),
	}
}
