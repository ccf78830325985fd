package model_test

import (
	"testing"

	domainerror "github.com/0xsj/overwatch-mastermind/internal/domain/error"
	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name         string
		secret       []int
		guess        []int
		wantCorrect  int
		wantPosition int
	}{
		{
			name:         "exact match",
			secret:       []int{1, 2, 3, 4},
			guess:        []int{1, 2, 3, 4},
			wantCorrect:  4,
			wantPosition: 4,
		},
		{
			name:         "all wrong",
			secret:       []int{0, 0, 0, 0},
			guess:        []int{7, 7, 7, 7},
			wantCorrect:  0,
			wantPosition: 0,
		},
		{
			name:         "exact matches leave no partial credit",
			secret:       []int{2, 2, 3, 4},
			guess:        []int{2, 3, 3, 3},
			wantCorrect:  2,
			wantPosition: 2,
		},
		{
			name:         "guess digit count capped by secret",
			secret:       []int{4, 4, 1, 1},
			guess:        []int{1, 1, 1, 1},
			wantCorrect:  2,
			wantPosition: 2,
		},
		{
			name:         "duplicates in secret are consumed once",
			secret:       []int{2, 2, 3, 4},
			guess:        []int{3, 2, 2, 2},
			wantCorrect:  3,
			wantPosition: 1,
		},
		{
			name:         "all digits present, none in place",
			secret:       []int{1, 2, 3, 4},
			guess:        []int{4, 3, 2, 1},
			wantCorrect:  4,
			wantPosition: 0,
		},
		{
			name:         "repeated guess digit matches single secret digit once",
			secret:       []int{5, 1, 2, 3},
			guess:        []int{0, 5, 5, 5},
			wantCorrect:  1,
			wantPosition: 0,
		},
		{
			name:         "exact match is not double counted",
			secret:       []int{1, 1, 2, 2},
			guess:        []int{1, 2, 1, 1},
			wantCorrect:  3,
			wantPosition: 1,
		},
		{
			name:         "single digit miss",
			secret:       []int{6},
			guess:        []int{7},
			wantCorrect:  0,
			wantPosition: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret := mustCode(t, tt.secret)
			guess := mustCode(t, tt.guess)

			fb, err := model.Score(secret, guess)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if fb.CorrectCount != tt.wantCorrect {
				t.Errorf("CorrectCount = %d, want %d", fb.CorrectCount, tt.wantCorrect)
			}
			if fb.CorrectPositionCount != tt.wantPosition {
				t.Errorf("CorrectPositionCount = %d, want %d", fb.CorrectPositionCount, tt.wantPosition)
			}
		})
	}
}

func TestScore_LengthMismatch(t *testing.T) {
	_, err := model.Score(mustCode(t, []int{1, 2, 3, 4}), mustCode(t, []int{1, 2, 3}))
	if err != domainerror.ErrCodeLengthMismatch {
		t.Errorf("error = %v, want %v", err, domainerror.ErrCodeLengthMismatch)
	}
}

// TestScore_Bounds walks every pair of length-3 codes over a 4-digit alphabet.
func TestScore_Bounds(t *testing.T) {
	codes := allCodes(3, 4)

	for _, s := range codes {
		secret := mustCode(t, s)
		for _, g := range codes {
			guess := mustCode(t, g)

			fb, err := model.Score(secret, guess)
			if err != nil {
				t.Fatalf("Score(%v, %v) error = %v", s, g, err)
			}
			if fb.CorrectPositionCount < 0 || fb.CorrectPositionCount > fb.CorrectCount || fb.CorrectCount > len(s) {
				t.Fatalf("Score(%v, %v) = %+v violates 0 <= position <= correct <= length", s, g, fb)
			}

			again, _ := model.Score(secret, guess)
			if again != fb {
				t.Fatalf("Score(%v, %v) not deterministic: %+v then %+v", s, g, fb, again)
			}

			if want := naiveCorrectCount(s, g); fb.CorrectCount != want {
				t.Fatalf("Score(%v, %v) CorrectCount = %d, want %d", s, g, fb.CorrectCount, want)
			}
		}
	}
}

func TestFeedback_IsFullMatch(t *testing.T) {
	fb := model.Feedback{CorrectCount: 4, CorrectPositionCount: 4}
	if !fb.IsFullMatch(4) {
		t.Error("IsFullMatch(4) should be true")
	}
	if fb.IsFullMatch(5) {
		t.Error("IsFullMatch(5) should be false")
	}
}

// naiveCorrectCount is the textbook definition: sum over digit values of min(count in secret, count in guess).
func naiveCorrectCount(secret, guess []int) int {
	sc := map[int]int{}
	gc := map[int]int{}
	for _, d := range secret {
		sc[d]++
	}
	for _, d := range guess {
		gc[d]++
	}
	total := 0
	for d, n := range sc {
		total += min(n, gc[d])
	}
	return total
}

func allCodes(length, base int) [][]int {
	if length == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for _, prefix := range allCodes(length-1, base) {
		for d := 0; d < base; d++ {
			code := append(append([]int{}, prefix...), d)
			out = append(out, code)
		}
	}
	return out
}

func mustCode(t *testing.T, digits []int) model.Code {
	t.Helper()
	code, err := model.NewCode(digits, model.DefaultDigitBase)
	if err != nil {
		t.Fatalf("NewCode(%v) error = %v", digits, err)
	}
	return code
}
