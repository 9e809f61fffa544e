// Package common holds the error-to-response mapping shared by the HTTP handlers.
package common

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"trophyseeker/internal/domain/guidance"
	errs "trophyseeker/internal/errors"
	"trophyseeker/internal/httpresponse"
)

var statusByError = []struct {
	err    error
	status int
}{
	{errs.ErrEmptyUsername, http.StatusBadRequest},
	{errs.ErrEmptyGoal, http.StatusBadRequest},
	{errs.ErrEmptyTip, http.StatusBadRequest},
	{errs.ErrEmptyVideoLink, http.StatusBadRequest},
	{errs.ErrInvalidVideoLink, http.StatusBadRequest},
	{errs.ErrEmptyMessage, http.StatusBadRequest},
	{errs.ErrGuidanceInput, http.StatusBadRequest},
	{errs.ErrOptimizationGames, http.StatusBadRequest},
	{errs.ErrNoOpenGoals, http.StatusBadRequest},
	{errs.ErrChallengeNotCompleted, http.StatusBadRequest},

	{errs.ErrSessionNotFound, http.StatusUnauthorized},

	{errs.ErrUserNotFound, http.StatusNotFound},
	{errs.ErrFriendRequestNotFound, http.StatusNotFound},
	{errs.ErrFriendNotFound, http.StatusNotFound},
	{errs.ErrChallengeNotFound, http.StatusNotFound},
	{errs.ErrBadgeNotFound, http.StatusNotFound},
	{errs.ErrGoalNotFound, http.StatusNotFound},
	{errs.ErrGameNotFound, http.StatusNotFound},

	{errs.ErrFriendRequestExists, http.StatusConflict},
	{errs.ErrPsnAlreadyConnected, http.StatusConflict},
	{errs.ErrPsnNotConnected, http.StatusConflict},
	{errs.ErrBadgeAlreadyClaimed, http.StatusConflict},

	{errs.ErrNoContent, http.StatusBadGateway},
	{errs.ErrMalformedGuidance, http.StatusBadGateway},
	{errs.ErrMissingAPIKey, http.StatusServiceUnavailable},
}

// StatusFor maps a usecase error onto an HTTP status code.
func StatusFor(err error) int {
	for _, entry := range statusByError {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// WriteUsecaseError logs the failed operation and writes the mapped response.
// Canceled requests get 409 with a canceled marker instead of an error body.
func WriteUsecaseError(w http.ResponseWriter, log *zap.SugaredLogger, op string, err error) {
	if errors.Is(err, errs.ErrCanceled) {
		log.Infow(op+": request canceled", "reason", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusConflict, guidance.CanceledResponse{Canceled: true})
		return
	}

	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorw(op+": internal error", "error", err)
		httpresponse.WriteError(w, status, errs.ErrInternal.Error())
		return
	}
	log.Warnw(op+": request failed", "status", status, "error", err)
	httpresponse.WriteError(w, status, err.Error())
}

func WriteDecodeError(w http.ResponseWriter, log *zap.SugaredLogger, op string, err error) {
	log.Warnw(op+": malformed request", "error", err)
	httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc+": "+err.Error())
}
