package form

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Field is the surface every field kind implements so a form driver can hold
// fields of different value types in one collection and drive them alike.
type Field interface {
	// Name returns the form field name the field reads its input from.
	Name() string

	// Validate takes this field's entry out of values or files, converts and
	// checks it, and stores the typed result. It returns nil on success or a
	// *FieldError with at least one message. A second call sees absent input.
	Validate(ctx context.Context, values *Values, files *Files) error

	// Duplicate returns a handle that shares the result slot with the receiver.
	// Validating or consuming through any handle is visible to all of them.
	Duplicate() Field
}

// PostValidator runs after the raw input was converted into T. It may reject
// the value, or accept it and return a possibly transformed value to store.
// Returning Errors reports each message separately.
type PostValidator[T any] func(ctx context.Context, v T) (T, error)

var (
	_ Field = (*TextField[string])(nil)
	_ Field = (*FileField[UploadedFile])(nil)
)

func logOutcome(ctx context.Context, log *slog.Logger, field string, err error) {
	if err != nil {
		log.DebugContext(ctx, "form field rejected",
			logger.Field(field),
			logger.Messages(Messages(err)),
		)
		return
	}
	log.DebugContext(ctx, "form field validated", logger.Field(field))
}
