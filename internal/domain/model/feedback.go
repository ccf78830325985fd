package model

import (
	domainerror "github.com/0xsj/overwatch-mastermind/internal/domain/error"
)

// Feedback is the result of scoring a guess against a secret code.
type Feedback struct {
	// CorrectCount counts guess digits present in the secret, exact matches included.
	CorrectCount int
	// CorrectPositionCount counts guess digits in the right position.
	CorrectPositionCount int
}

// IsFullMatch reports whether every one of length positions matched.
func (f Feedback) IsFullMatch(length int) bool {
	return f.CorrectPositionCount == length
}

// Score computes duplicate-aware Mastermind feedback for guess against secret.
//
// Exact matches are counted first. The secret digits at the remaining positions
// go into a frequency table, and each non-matching guess digit consumes at most
// one table entry, so a digit that appears k times in the secret contributes at
// most k to CorrectCount.
func Score(secret, guess Code) (Feedback, error) {
	if secret.Len() != guess.Len() {
		return Feedback{}, domainerror.ErrCodeLengthMismatch
	}

	var fb Feedback
	remaining := make(map[int]int, secret.Len())
	misses := make([]int, 0, guess.Len())

	for i, s := range secret.digits {
		g := guess.digits[i]
		if s == g {
			fb.CorrectPositionCount++
			continue
		}
		remaining[s]++
		misses = append(misses, g)
	}

	fb.CorrectCount = fb.CorrectPositionCount
	for _, g := range misses {
		if remaining[g] > 0 {
			remaining[g]--
			fb.CorrectCount++
		}
	}

	return fb, nil
}
