package httpserver

import (
	"time"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/query"
)

// Defaults applied when a start request omits a parameter.
const (
	DefaultTotalDigits = 4
	DefaultMaxAttempts = 10
)

// Outcome messages.
const (
	msgGameStarted = "Game started!"
	msgYouWin      = "You win!"
	msgYouLose     = "You lose!"
	msgGameEnded   = "Game ended."
)

// Requests

type startGameRequest struct {
	TotalDigits *int `json:"total_digits"`
	MaxAttempts *int `json:"max_attempts"`
}

func (r startGameRequest) toCommand() command.StartGame {
	cmd := command.StartGame{TotalDigits: DefaultTotalDigits, MaxAttempts: DefaultMaxAttempts}
	if r.TotalDigits != nil {
		cmd.TotalDigits = *r.TotalDigits
	}
	if r.MaxAttempts != nil {
		cmd.MaxAttempts = *r.MaxAttempts
	}
	return cmd
}

type guessRequest struct {
	Guess []int `json:"guess"`
}

type generateRequest struct {
	Qty int `json:"qty"`
}

// Responses

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type startGameResponse struct {
	SessionID   string    `json:"session_id"`
	CodeLength  int       `json:"code_length"`
	MaxAttempts int       `json:"max_attempts"`
	ExpiresAt   time.Time `json:"expires_at"`
	Message     string    `json:"message"`
}

func toStartGameResponse(result command.StartGameResult) startGameResponse {
	return startGameResponse{
		SessionID:   result.SessionID.String(),
		CodeLength:  result.CodeLength,
		MaxAttempts: result.MaxAttempts,
		ExpiresAt:   toTime(result.ExpiresAt),
		Message:     msgGameStarted,
	}
}

// guessResponse carries feedback while the game is in progress and
// the outcome plus the revealed code once it is over.
type guessResponse struct {
	CorrectNumbers    int    `json:"correct_numbers"`
	CorrectLocations  int    `json:"correct_locations"`
	AttemptsRemaining int    `json:"attempts_remaining"`
	State             string `json:"state"`
	Message           string `json:"message,omitempty"`
	SecretCode        []int  `json:"secret_code,omitempty"`
}

func toGuessResponse(result command.SubmitGuessResult) guessResponse {
	resp := guessResponse{
		CorrectNumbers:    result.CorrectCount,
		CorrectLocations:  result.CorrectPositionCount,
		AttemptsRemaining: result.AttemptsRemaining,
		State:             result.State.String(),
	}
	switch result.State {
	case model.GameStateWon:
		resp.Message = msgYouWin
		resp.SecretCode = result.SecretCode
	case model.GameStateLost:
		resp.Message = msgYouLose
		resp.SecretCode = result.SecretCode
	}
	return resp
}

type historyEntry struct {
	Guess             []int     `json:"guess"`
	CorrectNumbers    int       `json:"correct_numbers"`
	CorrectLocations  int       `json:"correct_locations"`
	AttemptsRemaining int       `json:"attempts_remaining"`
	GuessedAt         time.Time `json:"guessed_at"`
}

type statsResponse struct {
	SessionID         string         `json:"session_id"`
	AttemptsRemaining int            `json:"attempts_remaining"`
	MaxAttempts       int            `json:"max_attempts"`
	CodeLength        int            `json:"code_length"`
	State             string         `json:"state"`
	History           []historyEntry `json:"history"`
	ExpiresAt         time.Time      `json:"expires_at"`
}

func toStatsResponse(result query.GetStatsResult) statsResponse {
	history := make([]historyEntry, 0, len(result.History))
	for _, rec := range result.History {
		history = append(history, historyEntry{
			Guess:             rec.Guess,
			CorrectNumbers:    rec.CorrectCount,
			CorrectLocations:  rec.CorrectPositionCount,
			AttemptsRemaining: rec.AttemptsRemaining,
			GuessedAt:         toTime(rec.GuessedAt),
		})
	}
	return statsResponse{
		SessionID:         result.SessionID.String(),
		AttemptsRemaining: result.AttemptsRemaining,
		MaxAttempts:       result.MaxAttempts,
		CodeLength:        result.CodeLength,
		State:             result.State.String(),
		History:           history,
		ExpiresAt:         toTime(result.ExpiresAt),
	}
}

type endGameResponse struct {
	Message      string `json:"message"`
	SecretCode   []int  `json:"secret_code"`
	AttemptsUsed int    `json:"attempts_used"`
}

type poolStatusResponse struct {
	Size               int64 `json:"size"`
	LowWatermark       int64 `json:"low_watermark"`
	AutoRegenWatermark int64 `json:"auto_regen_watermark"`
	Low                bool  `json:"low"`
}

type generateResponse struct {
	Added   int    `json:"added"`
	Size    int64  `json:"size"`
	Message string `json:"message"`
}

type quotaResponse struct {
	Quota int64 `json:"quota"`
}

type summaryResponse struct {
	Total            int64   `json:"total"`
	Won              int64   `json:"won"`
	Lost             int64   `json:"lost"`
	Abandoned        int64   `json:"abandoned"`
	WinRate          float64 `json:"win_rate"`
	AvgAttemptsToWin float64 `json:"avg_attempts_to_win"`
}

func toSummaryResponse(summary model.ResultSummary) summaryResponse {
	return summaryResponse{
		Total:            summary.Total,
		Won:              summary.Won,
		Lost:             summary.Lost,
		Abandoned:        summary.Abandoned,
		WinRate:          summary.WinRate(),
		AvgAttemptsToWin: summary.AvgAttemptsToWin,
	}
}

func toTime(ts types.Timestamp) time.Time {
	if ts.IsZero() {
		return time.Time{}
	}
	return ts.Time().UTC()
}
