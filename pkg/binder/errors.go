package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrInvalidForm          = errors.New("invalid form data")
	ErrTooManyFiles         = errors.New("too many uploaded files")
	ErrFailedToStoreFile    = errors.New("failed to store uploaded file")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON body")
)
