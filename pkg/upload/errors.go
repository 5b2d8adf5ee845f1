package upload

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPath = errors.New("empty file path")

	// File system errors
	ErrFileNotFound = errors.New("file not found")
	ErrIsDirectory  = errors.New("path is a directory")

	// File validation errors
	ErrFileTooLarge       = errors.New("file size exceeds maximum allowed size")
	ErrMIMETypeNotAllowed = errors.New("MIME type is not allowed")

	// I/O operation errors, wrapped with context for debugging
	ErrFailedToOpenFile       = errors.New("failed to open file")
	ErrFailedToReadFile       = errors.New("failed to read file")
	ErrFailedToStatPath       = errors.New("failed to stat path")
	ErrFailedToDetectMIMEType = errors.New("failed to detect MIME type")
	ErrFailedToHashFile       = errors.New("failed to hash file")
)

// MIMETypeError reports a detected content type outside the allowed list.
type MIMETypeError struct {
	Detected string
	Allowed  []string
}

func (e *MIMETypeError) Error() string {
	return fmt.Sprintf("MIME type %s not in allowed types %v", e.Detected, e.Allowed)
}

func (e *MIMETypeError) Unwrap() error {
	return ErrMIMETypeNotAllowed
}
