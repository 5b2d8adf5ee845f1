package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindMissingField       Kind = "missing_field"
	KindMinLength          Kind = "min_length"
	KindMaxLength          Kind = "max_length"
	KindMissingFile        Kind = "missing_file"
	KindFileTooLarge       Kind = "file_too_large"
	KindFileTypeNotAllowed Kind = "file_type_not_allowed"
	KindCustom             Kind = "custom"
)

// Failure describes a single validation problem.
// Value holds the offending text value or filename, Limit the threshold that was
// crossed (zero when the kind has none). Message is the default sentence.
type Failure struct {
	Kind    Kind
	Field   string
	Value   string
	Limit   int64
	Message string
}

func (f Failure) Error() string {
	return f.Message
}

// TranslationKey returns the message key used by Localized, e.g. "form.max_length".
func (f Failure) TranslationKey() string {
	return "form." + string(f.Kind)
}

// TranslationValues returns the placeholders available to translated templates.
func (f Failure) TranslationValues() map[string]string {
	return map[string]string{
		"field": f.Field,
		"value": f.Value,
		"limit": strconv.FormatInt(f.Limit, 10),
	}
}

// ErrorHandler receives a structured failure and the default messages for it
// and returns the messages that are reported to the caller. It can replace,
// augment or translate the defaults.
type ErrorHandler func(ctx context.Context, failure Failure, defaults []string) []string

const (
	msgMissingField = "This field is missing."
	msgMissingFile  = "This field is required."
)

func missingField(field string) Failure {
	return Failure{Kind: KindMissingField, Field: field, Message: msgMissingField}
}

func missingFile(field string) Failure {
	return Failure{Kind: KindMissingFile, Field: field, Message: msgMissingFile}
}

func maxLengthExceeded(field, value string, limit int) Failure {
	return Failure{
		Kind:    KindMaxLength,
		Field:   field,
		Value:   value,
		Limit:   int64(limit),
		Message: fmt.Sprintf("Character length exceeds maximum size of %d", limit),
	}
}

func minLengthRequired(field, value string, limit int) Failure {
	return Failure{
		Kind:    KindMinLength,
		Field:   field,
		Value:   value,
		Limit:   int64(limit),
		Message: fmt.Sprintf("Character length must be at least %d", limit),
	}
}

// report collects failures and renders them through the optional handler.
type report struct {
	ctx      context.Context
	field    string
	handler  ErrorHandler
	failures []Failure
	messages []string
}

func newReport(ctx context.Context, field string, handler ErrorHandler) *report {
	return &report{ctx: ctx, field: field, handler: handler}
}

func (r *report) add(f Failure) {
	r.failures = append(r.failures, f)
	defaults := []string{f.Message}
	if r.handler == nil {
		r.messages = append(r.messages, defaults...)
		return
	}
	r.messages = append(r.messages, r.handler(r.ctx, f, defaults)...)
}

// addError records an error returned by a rule or a secondary validator.
// A Failure keeps its kind; an Errors list adds one custom failure per message;
// anything else becomes a single custom failure with the error text.
func (r *report) addError(err error) {
	var f Failure
	if errors.As(err, &f) {
		if f.Field == "" {
			f.Field = r.field
		}
		r.add(f)
		return
	}

	var list Errors
	if errors.As(err, &list) && len(list) > 0 {
		for _, msg := range list {
			r.add(Failure{Kind: KindCustom, Field: r.field, Message: msg})
		}
		return
	}

	r.add(Failure{Kind: KindCustom, Field: r.field, Message: err.Error()})
}

func (r *report) failed() bool {
	return len(r.failures) > 0
}

// err returns the accumulated outcome. A handler may legitimately return no
// messages for a failure; the outcome still fails and falls back to the defaults.
func (r *report) err() error {
	if !r.failed() {
		return nil
	}
	messages := r.messages
	if len(messages) == 0 {
		for _, f := range r.failures {
			messages = append(messages, f.Message)
		}
	}
	return &FieldError{Field: r.field, Messages: messages, Failures: r.failures}
}
