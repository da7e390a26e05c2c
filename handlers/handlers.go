// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/ballotbox/db"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/simulation"
	"github.com/danielhkuo/ballotbox/store"
	"github.com/danielhkuo/ballotbox/tally"
	"github.com/danielhkuo/ballotbox/timeparse"
	"github.com/danielhkuo/ballotbox/validate"
)

var errArchiveDisabled = errors.New("result archive not configured")

// writeError maps a domain error to its status code and writes it. Anything
// unrecognised is logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validate.Error

	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, verr.Message)
	case errors.Is(err, validate.ErrBodyTooLarge):
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.Is(err, validate.ErrMalformedBody):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")

	case errors.Is(err, store.ErrVoterNotFound),
		errors.Is(err, store.ErrCandidateNotFound),
		errors.Is(err, tally.ErrNoCandidates),
		errors.Is(err, db.ErrSnapshotNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())

	case errors.Is(err, store.ErrDuplicateEmail),
		errors.Is(err, store.ErrDuplicateCandidate),
		errors.Is(err, store.ErrAlreadyVoted),
		errors.Is(err, simulation.ErrNullifierUsed):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())

	case errors.Is(err, store.ErrVoterLocked),
		errors.Is(err, store.ErrCandidateLocked):
		middleware.ErrorResponse(w, http.StatusLocked, err.Error())

	case errors.Is(err, timeparse.ErrUnrecognizedFormat):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid date format. Supported formats: "+timeparse.SupportedFormats)
	case errors.Is(err, store.ErrInvalidInterval):
		middleware.ErrorResponse(w, http.StatusFailedDependency, store.ErrInvalidInterval.Error())

	case errors.Is(err, simulation.ErrInvalidProof):
		middleware.ErrorResponse(w, http.StatusTooEarly, simulation.ErrInvalidProof.Error())
	case errors.Is(err, simulation.ErrUnsupportedDimension),
		errors.Is(err, simulation.ErrInvalidBucket),
		errors.Is(err, simulation.ErrUnboundedNoise):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, errArchiveDisabled):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, err.Error())

	default:
		slog.Error("request failed",
			"request_id", middleware.RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

// bind decodes the body into dst and validates it, writing the error
// response itself when either step fails
func bind(w http.ResponseWriter, r *http.Request, v *validate.Validator, dst any) bool {
	if err := middleware.ParseJSONBody(w, r, dst); err != nil {
		writeError(w, r, err)
		return false
	}
	if err := v.Struct(dst); err != nil {
		writeError(w, r, err)
		return false
	}
	return true
}

// pathID reads a positive integer path parameter. Anything else cannot name
// an existing entity, so callers answer 404.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
