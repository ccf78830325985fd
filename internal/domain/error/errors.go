package error

import (
	"github.com/0xsj/overwatch-pkg/errors"
)

// Domain error codes
const (
	// Game errors
	CodeGameNotFound        errors.Code = "GAME_NOT_FOUND"
	CodeGameOver            errors.Code = "GAME_OVER"
	CodeSessionIDRequired   errors.Code = "SESSION_ID_REQUIRED"
	CodeInvalidParameters   errors.Code = "INVALID_PARAMETERS"
	CodeInvalidGuess        errors.Code = "INVALID_GUESS"
	CodeCodeLengthMismatch  errors.Code = "CODE_LENGTH_MISMATCH"
	CodeInvalidDigit        errors.Code = "INVALID_DIGIT"
	CodeVersionConflict     errors.Code = "VERSION_CONFLICT"
	CodeSecretCodeRequired  errors.Code = "SECRET_CODE_REQUIRED"
	CodeMaxAttemptsRequired errors.Code = "MAX_ATTEMPTS_REQUIRED"

	// Pool errors
	CodeInsufficientSupply   errors.Code = "INSUFFICIENT_SUPPLY"
	CodeInvalidQuantity      errors.Code = "INVALID_QUANTITY"
	CodeGeneratorUnavailable errors.Code = "GENERATOR_UNAVAILABLE"
)

// Game errors
var (
	ErrGameNotFound = errors.New(errors.KindNotFound, CodeGameNotFound, "game session not found")

	ErrGameOver = errors.New(errors.KindDomain, CodeGameOver, "game is already over")

	ErrSessionIDRequired = errors.New(errors.KindValidation, CodeSessionIDRequired, "session ID is required")

	ErrInvalidParameters = errors.New(errors.KindValidation, CodeInvalidParameters, "game parameters are out of range")

	ErrInvalidGuess = errors.New(errors.KindValidation, CodeInvalidGuess, "guess is invalid")

	ErrCodeLengthMismatch = errors.New(errors.KindValidation, CodeCodeLengthMismatch, "guess length does not match the secret code")

	ErrInvalidDigit = errors.New(errors.KindValidation, CodeInvalidDigit, "digit is outside the allowed range")

	ErrVersionConflict = errors.New(errors.KindConflict, CodeVersionConflict, "game session was modified concurrently")

	ErrSecretCodeRequired = errors.New(errors.KindValidation, CodeSecretCodeRequired, "secret code is required")

	ErrMaxAttemptsRequired = errors.New(errors.KindValidation, CodeMaxAttemptsRequired, "max attempts must be positive")
)

// Pool errors
var (
	ErrInsufficientSupply = errors.New(errors.KindDomain, CodeInsufficientSupply, "not enough digits in the supply pool, try again later")

	ErrInvalidQuantity = errors.New(errors.KindValidation, CodeInvalidQuantity, "quantity is out of range")

	ErrGeneratorUnavailable = errors.New(errors.KindDomain, CodeGeneratorUnavailable, "random number generator is unavailable")
)
