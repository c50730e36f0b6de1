package services

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-survey-backend/internal/observability"
)

func tracer(service string) trace.Tracer {
	return otel.Tracer("services/" + service)
}

// track closes out one mutation: it counts the outcome and marks the span
// as failed for storage errors. Caller-caused failures are "rejected".
func track(span trace.Span, entity, op string, err error) {
	outcome := observability.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidCredential):
		outcome = observability.OutcomeRejected
		span.RecordError(err)
	default:
		outcome = observability.OutcomeError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	observability.RecordMutation(entity, op, outcome)
}

// trackOutcome counts a successful mutation with an explicit outcome.
func trackOutcome(entity, op, outcome string) {
	observability.RecordMutation(entity, op, outcome)
}
