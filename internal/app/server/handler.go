package server

import (
	"encoding/json"
	"log"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	apperrors "github.com/louisbranch/fairflip/internal/platform/errors"
	"github.com/louisbranch/fairflip/internal/rounds"
	"github.com/louisbranch/fairflip/internal/treasury"
)

// NewHandler builds the HTTP handler for the API server.
func NewHandler(roundService *rounds.Service, ledger *treasury.Ledger) http.Handler {
	h := &handler{rounds: roundService, ledger: ledger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/rounds", h.createRound)
	mux.HandleFunc("POST /api/rounds/{id}/resolve", h.resolveRound)
	mux.HandleFunc("POST /api/rounds/{id}/reveal", h.revealRound)
	mux.HandleFunc("GET /api/treasury", h.treasuryStats)
	mux.HandleFunc("POST /api/treasury/entries", h.recordEntry)
	mux.HandleFunc("POST /api/treasury/payouts", h.recordPayout)

	return otelhttp.NewHandler(mux, "api")
}

type handler struct {
	rounds *rounds.Service
	ledger *treasury.Ledger
}

type resolveRequest struct {
	ClientSeed string `json:"clientSeed"`
	Sequence   *int64 `json:"sequence"`
}

type settlementRequest struct {
	Value float64 `json:"value"`
}

func (h *handler) createRound(w http.ResponseWriter, r *http.Request) {
	created, err := h.rounds.Create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"roundId":    created.RoundID,
		"commitment": created.Commitment,
	})
}

func (h *handler) resolveRound(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.CodeRequestBodyInvalid, "request body is not valid JSON", err))
		return
	}
	if req.Sequence == nil {
		writeError(w, apperrors.New(apperrors.CodeSequenceMissing, "sequence is required"))
		return
	}
	if *req.Sequence < 0 {
		writeError(w, apperrors.New(apperrors.CodeSequenceNegative, "sequence must not be negative"))
		return
	}

	resolved, err := h.rounds.Resolve(r.Context(), r.PathValue("id"), req.ClientSeed, uint64(*req.Sequence))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"roundId":   resolved.RoundID,
		"digestHex": resolved.DigestHex,
		"outcome":   string(resolved.Outcome),
	})
}

func (h *handler) revealRound(w http.ResponseWriter, r *http.Request) {
	revealed, err := h.rounds.Reveal(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"roundId": revealed.RoundID,
		"secret":  revealed.Secret,
	})
}

func (h *handler) treasuryStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ledger.Stats())
}

func (h *handler) recordEntry(w http.ResponseWriter, r *http.Request) {
	var req settlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.CodeRequestBodyInvalid, "request body is not valid JSON", err))
		return
	}
	if err := h.ledger.RecordEntry(r.Context(), req.Value); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]bool{"recorded": true})
}

func (h *handler) recordPayout(w http.ResponseWriter, r *http.Request) {
	var req settlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.CodeRequestBodyInvalid, "request body is not valid JSON", err))
		return
	}
	if err := h.ledger.RecordPayout(r.Context(), req.Value); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]bool{"recorded": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	message := err.Error()
	if code == apperrors.CodeUnknown {
		// Unknown errors stay in the logs; the caller gets a generic message.
		log.Printf("internal error: %v", err)
		message = "internal error"
	}
	writeJSON(w, code.HTTPStatus(), map[string]string{
		"code":  string(code),
		"error": message,
	})
}
