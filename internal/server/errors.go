// Package server provides the HTTP tool surface for the outreach pipeline.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/outreach-pipeline/internal/enrich"
	"github.com/jonathan/outreach-pipeline/internal/pipeline"
	"github.com/jonathan/outreach-pipeline/internal/store"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var notFound *store.NotFoundError
	var exists *store.AlreadyExistsError
	var enriched *enrich.AlreadyEnrichedError
	var invalid *pipeline.InvalidTransitionError
	var precondition *pipeline.PreconditionNotMetError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &exists), errors.As(err, &enriched):
		return http.StatusConflict
	case errors.As(err, &invalid), errors.As(err, &precondition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
