package domain

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidProductData = errors.New("all fields are required")
	ErrForbidden          = errors.New("forbidden")
)
