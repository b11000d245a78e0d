package core

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
		err  error
	}{
		{"Groceries", "Groceries", nil},
		{"  Rent  ", "Rent", nil},
		{strings.Repeat("a", 30), strings.Repeat("a", 30), nil},
		{" " + strings.Repeat("a", 30) + " ", strings.Repeat("a", 30), nil},
		{strings.Repeat("é", 30), strings.Repeat("é", 30), nil},
		{strings.Repeat("a", 31), "", ErrCategoryTooLong},
		{"", "", ErrBlankCategory},
		{"   ", "", ErrBlankCategory},
		{"\t\n", "", ErrBlankCategory},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("%q expected %v, got %v", tc.in, tc.err, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	today := NewDate(2026, 2, 10)
	cases := []struct {
		in  string
		err error
	}{
		{"2026-02-10", nil}, // today
		{"2026-02-09", nil},
		{" 2020-02-10 ", nil},
		{"2026-02-11", ErrFutureDate},
		{"2999-01-01", ErrFutureDate},
		{"2026/02/10", ErrInvalidDate},
		{"tomorrow", ErrInvalidDate},
		{"", ErrInvalidDate},
	}
	for _, tc := range cases {
		_, err := ParseDate(tc.in, today)
		if tc.err == nil && err != nil {
			t.Fatalf("%q expected ok, got %v", tc.in, err)
		}
		if tc.err != nil && !errors.Is(err, tc.err) {
			t.Fatalf("%q expected %v, got %v", tc.in, tc.err, err)
		}
	}
}

func TestNormalizeNote(t *testing.T) {
	if got := NormalizeNote("  milk "); got != "milk" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeNote(""); got != "" {
		t.Fatalf("got %q", got)
	}
}
