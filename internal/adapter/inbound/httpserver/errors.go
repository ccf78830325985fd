package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	domainerror "github.com/0xsj/overwatch-mastermind/internal/domain/error"
)

const codeInternal = "INTERNAL"

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorTable = []errorMapping{
	{domainerror.ErrInvalidParameters, http.StatusBadRequest, string(domainerror.CodeInvalidParameters)},
	{domainerror.ErrInvalidGuess, http.StatusBadRequest, string(domainerror.CodeInvalidGuess)},
	{domainerror.ErrInvalidQuantity, http.StatusBadRequest, string(domainerror.CodeInvalidQuantity)},
	{domainerror.ErrCodeLengthMismatch, http.StatusBadRequest, string(domainerror.CodeCodeLengthMismatch)},
	{domainerror.ErrSessionIDRequired, http.StatusBadRequest, string(domainerror.CodeSessionIDRequired)},
	{domainerror.ErrGameNotFound, http.StatusNotFound, string(domainerror.CodeGameNotFound)},
	{domainerror.ErrGameOver, http.StatusNotFound, string(domainerror.CodeGameNotFound)},
	{domainerror.ErrVersionConflict, http.StatusConflict, string(domainerror.CodeVersionConflict)},
	{domainerror.ErrInsufficientSupply, http.StatusServiceUnavailable, string(domainerror.CodeInsufficientSupply)},
	{domainerror.ErrGeneratorUnavailable, http.StatusServiceUnavailable, string(domainerror.CodeGeneratorUnavailable)},
}

// statusFor maps an error to its HTTP status, error code and client-facing message.
// Unrecognized errors become a 500 without leaking their text.
func statusFor(err error) (int, string, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			if m.err == domainerror.ErrGameOver {
				return m.status, m.code, domainerror.ErrGameNotFound.Error()
			}
			return m.status, m.code, m.err.Error()
		}
	}
	return http.StatusInternalServerError, codeInternal, "internal server error"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError renders err as {"error": CODE, "message": text}.
// A 503 carries Retry-After so clients back off until the next replenishment.
func writeError(w http.ResponseWriter, err error, retryAfter time.Duration) {
	status, code, message := statusFor(err)
	if status == http.StatusServiceUnavailable && retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Round(time.Second)/time.Second)))
	}
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: code, Message: message})
}
