package domain

import "errors"

// Validation failures. The operation is aborted before any state changes.
var (
	ErrDuplicateID       = errors.New("id already exists")
	ErrInvalidPrice      = errors.New("invalid price")
	ErrInvalidStock      = errors.New("invalid stock")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidDateRange  = errors.New("end date cannot be earlier than start date")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNoProducts        = errors.New("no products available, please add products first")
	ErrNoSuppliers       = errors.New("no suppliers available, please add suppliers first")
	ErrInvalidThreshold  = errors.New("stock threshold must be at least 1")
	ErrInvalidReportType = errors.New("unknown report type")
)

// Lookup failures.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrSupplierNotFound = errors.New("supplier not found")
)

// ErrCorruptRecord is returned when a persisted line cannot be decoded into its entity.
var ErrCorruptRecord = errors.New("corrupt record")

var validationErrors = []error{
	ErrDuplicateID,
	ErrInvalidPrice,
	ErrInvalidStock,
	ErrInvalidQuantity,
	ErrInvalidDate,
	ErrInvalidDateRange,
	ErrInsufficientStock,
	ErrNoProducts,
	ErrNoSuppliers,
	ErrInvalidThreshold,
	ErrInvalidReportType,
}

// IsValidation reports whether err was caused by rejected operator input.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err was caused by a reference to a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrSupplierNotFound)
}
