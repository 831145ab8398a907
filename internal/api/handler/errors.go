package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/docchat/internal/api/response"
	"github.com/Rrens/docchat/internal/domain"
)

// writeError maps service errors to HTTP responses
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		response.Fail(w, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
	case errors.Is(err, domain.ErrNothingToSend):
		response.BadRequest(w, response.CodeNothingToSend, err.Error())
	case errors.Is(err, domain.ErrUnsupportedFormat):
		response.BadRequest(w, response.CodeUnsupportedFormat, err.Error())
	case errors.Is(err, domain.ErrSendInFlight):
		response.Fail(w, http.StatusConflict, response.CodeSendInFlight, err.Error())
	case errors.Is(err, domain.ErrParseFailure):
		response.Fail(w, http.StatusUnprocessableEntity, response.CodeParseFailure, domain.ErrParseFailure.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		response.Fail(w, http.StatusRequestTimeout, response.CodeCanceled, "request canceled")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		response.InternalError(w)
	}
}
