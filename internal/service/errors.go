package service

import "errors"

var (
	// ErrUnauthorized is returned when a mutating call has no caller identity
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput is returned when a required field is missing or empty
	ErrInvalidInput = errors.New("invalid input")

	// ErrNothingToCheckout is returned when no requested product resolved
	ErrNothingToCheckout = errors.New("no purchasable products")
)

// requireText reports ErrInvalidInput unless every value is non-empty
func requireText(values ...string) error {
	for _, v := range values {
		if v == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

// patchText copies a present value over dst. Present but empty is rejected.
func patchText(dst *string, value *string) error {
	if value == nil {
		return nil
	}
	if *value == "" {
		return ErrInvalidInput
	}
	*dst = *value
	return nil
}
