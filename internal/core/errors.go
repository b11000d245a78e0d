package core

import "errors"

// ValidationKind names the input rule an expense failed.
type ValidationKind string

const (
	KindInvalidAmount     ValidationKind = "InvalidAmount"
	KindNonPositiveAmount ValidationKind = "NonPositiveAmount"
	KindBlankCategory     ValidationKind = "BlankCategory"
	KindCategoryTooLong   ValidationKind = "CategoryTooLong"
	KindInvalidDate       ValidationKind = "InvalidDate"
	KindFutureDate        ValidationKind = "FutureDate"
)

// MaxCategoryLength is measured in characters after trimming.
const MaxCategoryLength = 30

// ValidationError is a rejected-input condition detected before anything is
// persisted. Message is safe to show to the user as is.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches any ValidationError of the same kind, so the sentinels below
// work with errors.Is.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidAmount     = &ValidationError{Kind: KindInvalidAmount, Message: "Amount must be a valid number (e.g., 12.50)."}
	ErrNonPositiveAmount = &ValidationError{Kind: KindNonPositiveAmount, Message: "Amount must be greater than 0."}
	ErrBlankCategory     = &ValidationError{Kind: KindBlankCategory, Message: "Category is required."}
	ErrCategoryTooLong   = &ValidationError{Kind: KindCategoryTooLong, Message: "Category must be 30 characters or less."}
	ErrInvalidDate       = &ValidationError{Kind: KindInvalidDate, Message: "Date must be in ISO format YYYY-MM-DD."}
	ErrFutureDate        = &ValidationError{Kind: KindFutureDate, Message: "Date cannot be in the future for an expense entry."}

	// ErrPersistence marks a backing record that exists but cannot be read
	// back into valid transactions.
	ErrPersistence = errors.New("persistence error")
)

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsCategoryError groups the blank and too-long category failures.
func IsCategoryError(err error) bool {
	return errors.Is(err, ErrBlankCategory) || errors.Is(err, ErrCategoryTooLong)
}

// IsDateError groups the unparsable and future date failures.
func IsDateError(err error) bool {
	return errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrFutureDate)
}
