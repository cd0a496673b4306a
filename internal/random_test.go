package internal

import (
	"regexp"
	"testing"
)

func TestNewOTPFormat(t *testing.T) {
	sixDigits := regexp.MustCompile(`^\d{6}$`)

	for i := 0; i < 1000; i++ {
		otp, err := NewOTP(6)
		if err != nil {
			t.Fatalf("NewOTP failed: %v", err)
		}
		if !sixDigits.MatchString(otp) {
			t.Fatalf("expected six decimal digits, got %q", otp)
		}
	}
}

func TestNewOTPLengths(t *testing.T) {
	for digits := MinOTPDigits; digits <= MaxOTPDigits; digits++ {
		otp, err := NewOTP(digits)
		if err != nil {
			t.Fatalf("NewOTP(%d) failed: %v", digits, err)
		}
		if len(otp) != digits {
			t.Fatalf("NewOTP(%d): expected %d chars, got %d", digits, digits, len(otp))
		}
	}
}

func TestNewOTPRejectsBadLengths(t *testing.T) {
	for _, digits := range []int{-1, 0, 3, 11} {
		if _, err := NewOTP(digits); err == nil {
			t.Fatalf("expected NewOTP(%d) to fail", digits)
		}
	}
}

func TestNewOTPVariation(t *testing.T) {
	// Not a randomness test, just a sanity check that the generator is
	// not stuck on one value.
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		otp, err := NewOTP(6)
		if err != nil {
			t.Fatalf("NewOTP failed: %v", err)
		}
		seen[otp] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatalf("expected varied codes, got %d distinct of 50", len(seen))
	}
}
