package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPartNotFound    = errors.New("part not found")
	ErrRequestNotFound = errors.New("request not found")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPartID   = errors.New("invalid part id")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidDate     = errors.New("invalid required date")
	ErrMissingStatus   = errors.New("status not provided")
)

// MissingFieldsError reports exactly which required creation fields were
// absent, in the order they are checked.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing fields: " + strings.Join(e.Fields, ", ")
}

// InsufficientStockError carries the currently available quantity so the
// caller can adjust the request.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available", e.Available)
}
