package core

import (
	"strings"
	"unicode/utf8"
)

// ParseCategory trims the input and enforces 1 to MaxCategoryLength characters.
func ParseCategory(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrBlankCategory
	}
	if utf8.RuneCountInString(s) > MaxCategoryLength {
		return "", ErrCategoryTooLong
	}
	return s, nil
}

// ParseDate trims the input, parses it as YYYY-MM-DD and rejects dates
// strictly after today. Today equal to the parsed date is accepted.
func ParseDate(s string, today Date) (Date, error) {
	d, err := ParseISODate(strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	if d.After(today.Time) {
		return Date{}, ErrFutureDate
	}
	return d, nil
}

// NormalizeNote trims the free-text note; an empty note is valid.
func NormalizeNote(s string) string {
	return strings.TrimSpace(s)
}
