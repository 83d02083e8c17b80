package apperr

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error kinds shared by services. Handlers map these to HTTP statuses;
// services never partially commit before returning one.
var (
	ErrNotFound             = errors.New("record not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrReferentialViolation = errors.New("referenced record does not exist")
)

// InsufficientStockError is returned when a stock decrement would drive a
// product's quantity below zero. The product row is left untouched.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}
