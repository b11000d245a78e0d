package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		err error
	}{
		{"1", "1.00", nil},
		{"1.0", "1.00", nil},
		{"10.00", "10.00", nil},
		{" 2.50 ", "2.50", nil},
		{"0.01", "0.01", nil},
		{"1.005", "1.00", nil}, // half-even
		{"1.015", "1.02", nil}, // half-even
		{"2.675", "2.68", nil},
		{"12.3449", "12.34", nil},
		{"-5", "", ErrNonPositiveAmount},
		{"0", "", ErrNonPositiveAmount},
		{"0.00", "", ErrNonPositiveAmount},
		{"0.004", "", ErrNonPositiveAmount}, // rounds to zero
		{"abc", "", ErrInvalidAmount},
		{"1.2.3", "", ErrInvalidAmount},
		{"12,50", "", ErrInvalidAmount},
		{"", "", ErrInvalidAmount},
		{"   ", "", ErrInvalidAmount},
		{"1e3", "1000.00", nil},
		{"1e-100000000", "", ErrInvalidAmount},
		{"1e100000000", "", ErrInvalidAmount},
		{"-1e100000000", "", ErrInvalidAmount},
		{"0.000000000000000000001", "", ErrInvalidAmount},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("%q expected %v, got %v", tc.in, tc.err, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q unexpected error: %v", tc.in, err)
		}
		if s := FormatAmount(got); s != tc.out {
			t.Fatalf("%q expected %s, got %s", tc.in, tc.out, s)
		}
	}
}

func TestFormatAmountKeepsScale(t *testing.T) {
	cases := map[string]string{
		"10.00":  "10.00",
		"10.5":   "10.5",
		"10":     "10",
		"-10.00": "-10.00",
		"0":      "0",
	}
	for in, want := range cases {
		d, err := ParseStoredAmount(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got := FormatAmount(d); got != want {
			t.Fatalf("%q formatted as %q, want %q", in, got, want)
		}
	}
}

func TestParseStoredAmountRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "ten", "1..0", "1e-100000000", "1e100000000"} {
		if _, err := ParseStoredAmount(in); err == nil {
			t.Fatalf("%q expected error", in)
		}
	}
}

func TestParseAmountHugeExponentReturnsQuickly(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, in := range []string{"1e-100000000", "1e100000000"} {
			if _, err := ParseAmount(in); !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("%q expected ErrInvalidAmount, got %v", in, err)
			}
			if _, err := ParseStoredAmount(in); err == nil {
				t.Errorf("%q expected stored amount error", in)
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("amount parsing did not return")
	}
}

func TestStoredAmountCanonicalForm(t *testing.T) {
	cases := map[string]string{
		"1e3":    "1000",
		"+5":     "5",
		"1.5e1":  "15",
		"12.50":  "12.50",
		"1.25e1": "12.5",
	}
	for in, want := range cases {
		d, err := ParseStoredAmount(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		got := FormatAmount(d)
		if got != want {
			t.Fatalf("%q formatted as %q, want %q", in, got, want)
		}
		again, err := ParseStoredAmount(got)
		if err != nil || FormatAmount(again) != got {
			t.Fatalf("canonical %q is not stable: %v", got, err)
		}
	}
}
