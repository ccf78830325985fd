package model

import (
	"strconv"
	"strings"

	domainerror "github.com/0xsj/overwatch-mastermind/internal/domain/error"
)

const (
	// DefaultDigitBase is the number of distinct digit values (0..7).
	DefaultDigitBase = 8

	// DefaultCodeLength is the number of digits in a secret code.
	DefaultCodeLength = 4

	// MaxCodeLength bounds the length of a single code.
	MaxCodeLength = 1000
)

// Code is an ordered sequence of digits, used for both secret codes and guesses.
// A Code is never modified after construction; accessors return copies.
type Code struct {
	digits []int
}

// NewCode creates a Code, validating every digit against [0, base-1].
func NewCode(digits []int, base int) (Code, error) {
	if len(digits) == 0 {
		return Code{}, domainerror.ErrSecretCodeRequired
	}
	for _, d := range digits {
		if d < 0 || d >= base {
			return Code{}, domainerror.ErrInvalidDigit
		}
	}

	owned := make([]int, len(digits))
	copy(owned, digits)
	return Code{digits: owned}, nil
}

// Digits returns a copy of the digits.
func (c Code) Digits() []int {
	out := make([]int, len(c.digits))
	copy(out, c.digits)
	return out
}

// Len returns the number of digits.
func (c Code) Len() int { return len(c.digits) }

// IsEmpty reports whether the code has no digits.
func (c Code) IsEmpty() bool { return len(c.digits) == 0 }

// Equal reports whether both codes hold the same digits in the same order.
func (c Code) Equal(other Code) bool {
	if len(c.digits) != len(other.digits) {
		return false
	}
	for i := range c.digits {
		if c.digits[i] != other.digits[i] {
			return false
		}
	}
	return true
}

func (c Code) String() string {
	parts := make([]string, len(c.digits))
	for i, d := range c.digits {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, " ")
}
