package form

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// FileField validates uploaded files and converts them into T.
// Configuration methods return a configured copy with its own result slot.
type FileField[T any] struct {
	name    string
	shape   Shape[UploadedFile, T]
	rules   []FileRule
	post    PostValidator[T]
	handler ErrorHandler
	log     *slog.Logger
	result  *slot[T]
}

// File creates a file field converting its uploads with the given shape.
func File[T any](name string, shape Shape[UploadedFile, T]) *FileField[T] {
	return &FileField[T]{
		name:   name,
		shape:  shape,
		log:    logger.Nop(),
		result: newSlot[T](),
	}
}

// Upload creates a required single-file field. Extra files are ignored.
func Upload(name string) *FileField[UploadedFile] {
	return File(name, One[UploadedFile]())
}

// OptionalUpload creates a single-file field that yields nil when no file was sent.
func OptionalUpload(name string) *FileField[*UploadedFile] {
	return File(name, Maybe[UploadedFile]())
}

// Uploads creates a required multi-file field.
func Uploads(name string) *FileField[[]UploadedFile] {
	return File(name, All[UploadedFile]())
}

// OptionalUploads creates a multi-file field that yields nil when no file was sent.
func OptionalUploads(name string) *FileField[[]UploadedFile] {
	return File(name, MaybeAll[UploadedFile]())
}

func (f *FileField[T]) clone() *FileField[T] {
	c := *f
	c.result = newSlot[T]()
	return &c
}

// AfterConvert sets the secondary validator.
func (f *FileField[T]) AfterConvert(fn PostValidator[T]) *FileField[T] {
	c := f.clone()
	c.post = fn
	return c
}

// Check adds rules applied to every converted file before the secondary validator.
func (f *FileField[T]) Check(rules ...FileRule) *FileField[T] {
	c := f.clone()
	c.rules = append(append([]FileRule(nil), f.rules...), rules...)
	return c
}

// OnError installs a handler that shapes the reported messages.
func (f *FileField[T]) OnError(h ErrorHandler) *FileField[T] {
	c := f.clone()
	c.handler = h
	return c
}

// WithLogger sets the logger used to trace validation outcomes at debug level.
func (f *FileField[T]) WithLogger(l *slog.Logger) *FileField[T] {
	c := f.clone()
	if l != nil {
		c.log = l
	}
	return c
}

func (f *FileField[T]) Name() string {
	return f.name
}

func (f *FileField[T]) Duplicate() Field {
	c := *f
	return &c
}

func (f *FileField[T]) Validate(ctx context.Context, _ *Values, files *Files) error {
	err := f.validate(ctx, files)
	logOutcome(ctx, f.log, f.name, err)
	return err
}

func (f *FileField[T]) validate(ctx context.Context, files *Files) error {
	raw, _ := files.Take(f.name)
	rep := newReport(ctx, f.name, f.handler)

	uploads := make([]UploadedFile, 0, len(raw))
	for _, r := range raw {
		uploads = append(uploads, NewUploadedFile(r))
	}

	var (
		value     T
		converted bool
	)
	if len(uploads) > 0 {
		value, converted = f.shape.Drain(uploads)
	}

	if converted {
		for _, file := range f.shape.Items(value) {
			for _, rule := range f.rules {
				if err := rule(ctx, file); err != nil {
					rep.addError(err)
				}
			}
		}

		if !rep.failed() && f.post != nil {
			out, err := f.post(ctx, value)
			if err != nil {
				rep.addError(err)
			} else {
				value = out
			}
		}
	}

	empty := len(uploads) == 0
	if (empty && !f.shape.Optional()) || (!empty && !converted) {
		rep.add(missingFile(f.name))
	}

	if err := rep.err(); err != nil {
		return err
	}

	if empty {
		// Optional shapes build their empty representation from no input.
		value, _ = f.shape.Drain(nil)
	}

	f.result.store(value)
	return nil
}

// Validated reports whether a value is ready to be taken.
func (f *FileField[T]) Validated() bool {
	return f.result.ready()
}

// Value moves the validated value out of the field.
// It panics when Validate has not succeeded or the value was already taken;
// use TryValue to get an error instead.
func (f *FileField[T]) Value() T {
	return f.result.mustTake(f.name)
}

// TryValue moves the validated value out of the field, returning an error
// wrapping ErrNotValidated or ErrAlreadyConsumed on misuse.
func (f *FileField[T]) TryValue() (T, error) {
	return f.result.take(f.name)
}
