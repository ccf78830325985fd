package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/0xsj/overwatch-pkg/log"
	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-mastermind/internal/domain/error"
	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/query"
)

const maxBodyBytes = 1 << 16

// Handler serves the game and pool endpoints.
type Handler struct {
	// Command handlers
	startGameHandler      command.StartGameHandler
	submitGuessHandler    command.SubmitGuessHandler
	endGameHandler        command.EndGameHandler
	generateDigitsHandler command.GenerateDigitsHandler

	// Query handlers
	getStatsHandler      query.GetStatsHandler
	getPoolStatusHandler query.GetPoolStatusHandler
	getQuotaHandler      query.GetQuotaHandler
	getSummaryHandler    query.GetSummaryHandler

	retryAfter time.Duration
	logger     log.Logger
}

// HandlerConfig holds all the handlers needed by the HTTP handler.
type HandlerConfig struct {
	StartGameHandler      command.StartGameHandler
	SubmitGuessHandler    command.SubmitGuessHandler
	EndGameHandler        command.EndGameHandler
	GenerateDigitsHandler command.GenerateDigitsHandler
	GetStatsHandler       query.GetStatsHandler
	GetPoolStatusHandler  query.GetPoolStatusHandler
	GetQuotaHandler       query.GetQuotaHandler
	GetSummaryHandler     query.GetSummaryHandler

	// RetryAfter is advertised on 503 responses; usually the replenishment interval.
	RetryAfter time.Duration
	Logger     log.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		startGameHandler:      cfg.StartGameHandler,
		submitGuessHandler:    cfg.SubmitGuessHandler,
		endGameHandler:        cfg.EndGameHandler,
		generateDigitsHandler: cfg.GenerateDigitsHandler,
		getStatsHandler:       cfg.GetStatsHandler,
		getPoolStatusHandler:  cfg.GetPoolStatusHandler,
		getQuotaHandler:       cfg.GetQuotaHandler,
		getSummaryHandler:     cfg.GetSummaryHandler,
		retryAfter:            cfg.RetryAfter,
		logger:                cfg.Logger,
	}
}

// Routes registers every endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/games", func(r chi.Router) {
		r.Post("/", h.StartGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetStats)
			r.Delete("/", h.EndGame)
			r.Post("/guesses", h.SubmitGuess)
		})
	})

	r.Route("/pool", func(r chi.Router) {
		r.Get("/", h.GetPoolStatus)
		r.Post("/generate", h.GenerateDigits)
		r.Get("/quota", h.GetQuota)
	})

	r.Get("/stats/summary", h.GetSummary)
}

// Health

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Games

func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if err := decodeBody(r, &req, true); err != nil {
		writeBadRequest(w, "INVALID_JSON", err.Error())
		return
	}

	result, err := h.startGameHandler.Handle(r.Context(), req.toCommand())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toStartGameResponse(result))
}

func (h *Handler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req guessRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeBadRequest(w, "INVALID_JSON", err.Error())
		return
	}

	result, err := h.submitGuessHandler.Handle(r.Context(), command.SubmitGuess{
		SessionID: sessionID,
		Guess:     req.Guess,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGuessResponse(result))
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	result, err := h.getStatsHandler.Handle(r.Context(), query.GetStats{SessionID: sessionID})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatsResponse(result))
}

func (h *Handler) EndGame(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	result, err := h.endGameHandler.Handle(r.Context(), command.EndGame{SessionID: sessionID})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, endGameResponse{
		Message:      msgGameEnded,
		SecretCode:   result.SecretCode,
		AttemptsUsed: result.AttemptsUsed,
	})
}

// Pool

func (h *Handler) GetPoolStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.getPoolStatusHandler.Handle(r.Context(), query.GetPoolStatus{})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, poolStatusResponse{
		Size:               result.Size,
		LowWatermark:       result.LowWatermark,
		AutoRegenWatermark: result.AutoRegenWatermark,
		Low:                result.Low,
	})
}

func (h *Handler) GenerateDigits(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeBadRequest(w, "INVALID_JSON", err.Error())
		return
	}

	result, err := h.generateDigitsHandler.Handle(r.Context(), command.GenerateDigits{Quantity: req.Qty})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Added:   result.Added,
		Size:    result.Size,
		Message: fmt.Sprintf("%d random number(s) generated and stored.", result.Added),
	})
}

func (h *Handler) GetQuota(w http.ResponseWriter, r *http.Request) {
	result, err := h.getQuotaHandler.Handle(r.Context(), query.GetQuota{})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, quotaResponse{Quota: result.Quota})
}

// Stats

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.getSummaryHandler.Handle(r.Context(), query.GetSummary{})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(result.Summary))
}

// Helpers

// sessionID parses the {id} path parameter. Malformed IDs are reported
// exactly like unknown sessions.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (types.ID, bool) {
	id, err := types.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, domainerror.ErrGameNotFound, h.retryAfter)
		return types.ID(""), false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if status, _, _ := statusFor(err); status == http.StatusInternalServerError && h.logger != nil {
		h.logger.Error("request failed",
			log.String("method", r.Method),
			log.String("path", r.URL.Path),
			log.String("error", err.Error()),
		)
	}
	writeError(w, err, h.retryAfter)
}

// decodeBody decodes a JSON request body into dst. An empty body is
// accepted only when allowEmpty is set.
func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
