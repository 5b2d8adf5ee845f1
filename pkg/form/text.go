package form

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// TextField validates text input and converts it into T.
//
// Configuration methods return a configured copy with its own result slot
// and never modify the receiver. Only Duplicate shares the slot.
type TextField[T any] struct {
	name         string
	shape        Shape[string, T]
	minLength    int
	maxLength    int
	hasMin       bool
	hasMax       bool
	defaultValue string
	hasDefault   bool
	post         PostValidator[T]
	handler      ErrorHandler
	log          *slog.Logger
	result       *slot[T]
}

// Text creates a text field converting its input with the given shape.
func Text[T any](name string, shape Shape[string, T]) *TextField[T] {
	return &TextField[T]{
		name:   name,
		shape:  shape,
		log:    logger.Nop(),
		result: newSlot[T](),
	}
}

// String creates a required single-value text field.
func String(name string) *TextField[string] {
	return Text(name, One[string]())
}

// OptionalString creates a text field that yields nil when the value is absent.
func OptionalString(name string) *TextField[*string] {
	return Text(name, Maybe[string]())
}

// Strings creates a required multi-value text field.
func Strings(name string) *TextField[[]string] {
	return Text(name, All[string]())
}

// OptionalStrings creates a multi-value text field that yields nil when absent.
func OptionalStrings(name string) *TextField[[]string] {
	return Text(name, MaybeAll[string]())
}

// clone copies the configuration into a field with a fresh result slot.
func (f *TextField[T]) clone() *TextField[T] {
	c := *f
	c.result = newSlot[T]()
	return &c
}

// MaxLength limits the number of characters of the submitted value.
// Only the first value is checked when several values share the field name.
func (f *TextField[T]) MaxLength(n int) *TextField[T] {
	c := f.clone()
	c.maxLength, c.hasMax = n, true
	return c
}

// MinLength requires at least n characters in the submitted value.
// Only the first value is checked when several values share the field name.
func (f *TextField[T]) MinLength(n int) *TextField[T] {
	c := f.clone()
	c.minLength, c.hasMin = n, true
	return c
}

// Default sets the raw value used when a required field is not submitted at
// all, so it never reports a missing-field error. Optional shapes ignore it
// and yield their empty value.
func (f *TextField[T]) Default(value string) *TextField[T] {
	c := f.clone()
	c.defaultValue, c.hasDefault = value, true
	return c
}

// AfterConvert sets a validator that runs on the converted value once the
// length checks passed. It is skipped when there is no input and no default.
func (f *TextField[T]) AfterConvert(fn PostValidator[T]) *TextField[T] {
	c := f.clone()
	c.post = fn
	return c
}

// OnError installs a handler that shapes the reported messages.
func (f *TextField[T]) OnError(h ErrorHandler) *TextField[T] {
	c := f.clone()
	c.handler = h
	return c
}

// WithLogger sets the logger used to trace validation outcomes at debug level.
func (f *TextField[T]) WithLogger(l *slog.Logger) *TextField[T] {
	c := f.clone()
	if l != nil {
		c.log = l
	}
	return c
}

func (f *TextField[T]) Name() string {
	return f.name
}

func (f *TextField[T]) Duplicate() Field {
	c := *f
	return &c
}

func (f *TextField[T]) Validate(ctx context.Context, values *Values, _ *Files) error {
	err := f.validate(ctx, values)
	logOutcome(ctx, f.log, f.name, err)
	return err
}

func (f *TextField[T]) validate(ctx context.Context, values *Values) error {
	raw, _ := values.Take(f.name)
	rep := newReport(ctx, f.name, f.handler)

	// Length is checked on submitted input only; a default is trusted as is.
	if len(raw) > 0 {
		f.checkLength(rep, raw[0])
	}

	if len(raw) == 0 && f.hasDefault && !f.shape.Optional() {
		raw = []string{f.defaultValue}
	}

	if len(raw) == 0 && !f.shape.Optional() {
		rep.add(missingField(f.name))
	}

	if err := rep.err(); err != nil {
		return err
	}

	v, ok := f.shape.Drain(raw)
	if !ok {
		rep.add(missingField(f.name))
		return rep.err()
	}

	if f.post != nil && len(raw) > 0 {
		out, err := f.post(ctx, v)
		if err != nil {
			rep.addError(err)
			return rep.err()
		}
		v = out
	}

	f.result.store(v)
	return nil
}

func (f *TextField[T]) checkLength(rep *report, value string) {
	n := utf8.RuneCountInString(value)
	if f.hasMin && n < f.minLength {
		rep.add(minLengthRequired(f.name, value, f.minLength))
	}
	if f.hasMax && n > f.maxLength {
		rep.add(maxLengthExceeded(f.name, value, f.maxLength))
	}
}

// Validated reports whether a value is ready to be taken.
func (f *TextField[T]) Validated() bool {
	return f.result.ready()
}

// Value moves the validated value out of the field.
// It panics when Validate has not succeeded or the value was already taken;
// use TryValue to get an error instead.
func (f *TextField[T]) Value() T {
	return f.result.mustTake(f.name)
}

// TryValue moves the validated value out of the field, returning an error
// wrapping ErrNotValidated or ErrAlreadyConsumed on misuse.
func (f *TextField[T]) TryValue() (T, error) {
	return f.result.take(f.name)
}
