package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"queuecalc/internal/queueing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	Error     *queueing.Error `json:"error"`
	RequestID string          `json:"requestId,omitempty"`
}

type batchRequest struct {
	Requests []queueing.Request `json:"requests"`
}

type batchResponse struct {
	Outcomes []queueing.Outcome `json:"outcomes"`
}

// statusFor maps an engine error kind to an HTTP status.
func statusFor(kind queueing.Kind) int {
	switch kind {
	case queueing.KindValidation:
		return http.StatusBadRequest
	case queueing.KindStability, queueing.KindDomain:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var qe *queueing.Error
	if !errors.As(err, &qe) {
		qe = &queueing.Error{Kind: queueing.KindInternal, Message: err.Error()}
	}
	writeJSON(w, statusFor(qe.Kind), errorResponse{Error: qe, RequestID: requestIDFrom(r.Context())})
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &queueing.Error{Kind: queueing.KindValidation, Message: fmt.Sprintf("invalid request body: %v", err)}
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.opts.Version})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, queueing.Models())
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req queueing.Request
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.solve(w, r, req)
}

func (s *Server) handleCalculateModel(w http.ResponseWriter, r *http.Request) {
	var p queueing.Parameters
	if err := decodeBody(r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	s.solve(w, r, queueing.Request{Model: queueing.Model(mux.Vars(r)["model"]), Parameters: p})
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request, req queueing.Request) {
	start := time.Now()
	res, err := s.engine.Solve(req)
	s.metrics.observe(req.Model, err, time.Since(start))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var body batchRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	if len(body.Requests) == 0 || len(body.Requests) > MaxBatchSize {
		writeError(w, r, &queueing.Error{
			Kind:    queueing.KindValidation,
			Message: fmt.Sprintf("a batch holds between 1 and %d requests, got %d", MaxBatchSize, len(body.Requests)),
		})
		return
	}

	start := time.Now()
	outcomes, err := s.engine.SolveBatch(r.Context(), body.Requests, s.opts.BatchWorkers)
	if err != nil {
		// only a cancelled request context gets here; the client is gone
		log.Warn().Err(err).Str("requestId", requestIDFrom(r.Context())).Msg("Batch aborted")
		return
	}
	per := time.Since(start) / time.Duration(len(outcomes))
	for _, o := range outcomes {
		var oerr error
		if o.Error != nil {
			oerr = o.Error
		}
		s.metrics.observe(o.Model, oerr, per)
	}
	writeJSON(w, http.StatusOK, batchResponse{Outcomes: outcomes})
}
