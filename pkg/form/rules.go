package form

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/upload"
)

// FileRule checks a single converted file. A rejected file is reported by
// returning a Failure; any other error is reported as a custom failure.
type FileRule func(ctx context.Context, file UploadedFile) error

// MaxFileSize rejects files larger than maxBytes.
func MaxFileSize(maxBytes int64) FileRule {
	return func(_ context.Context, file UploadedFile) error {
		size, err := file.FileSize()
		if err != nil {
			return err
		}
		if size > maxBytes {
			return Failure{
				Kind:    KindFileTooLarge,
				Value:   file.Filename,
				Limit:   maxBytes,
				Message: fmt.Sprintf("File size exceeds maximum size of %d bytes", maxBytes),
			}
		}
		return nil
	}
}

// AllowedTypes accepts only files whose sniffed content type is in mimeTypes.
// The declared Content-Type is not trusted.
func AllowedTypes(mimeTypes ...string) FileRule {
	return func(_ context.Context, file UploadedFile) error {
		err := upload.ValidateMIMEType(file.TempPath, mimeTypes...)
		if err == nil {
			return nil
		}
		return typeNotAllowed(file, err)
	}
}

// ImagesOnly accepts files recognized as images by content, falling back to
// the extension when content sniffing is inconclusive.
func ImagesOnly() FileRule {
	return func(_ context.Context, file UploadedFile) error {
		if upload.IsImage(file.TempPath, file.Filename) {
			return nil
		}
		return typeNotAllowed(file, upload.ErrMIMETypeNotAllowed)
	}
}

// AllowedExtensions accepts only files whose original name ends with one of
// the given extensions. Comparison ignores case; the leading dot is optional.
func AllowedExtensions(exts ...string) FileRule {
	allowed := make([]string, 0, len(exts))
	for _, ext := range exts {
		allowed = append(allowed, "."+strings.TrimPrefix(strings.ToLower(ext), "."))
	}
	return func(_ context.Context, file UploadedFile) error {
		ext := strings.ToLower(file.Ext())
		if slices.Contains(allowed, ext) {
			return nil
		}
		return Failure{
			Kind:    KindFileTypeNotAllowed,
			Value:   file.Filename,
			Message: fmt.Sprintf("File type %s is not allowed", displayExt(ext)),
		}
	}
}

func typeNotAllowed(file UploadedFile, err error) Failure {
	detected := ""
	var mt *upload.MIMETypeError
	if errors.As(err, &mt) {
		detected = mt.Detected
	}
	if detected == "" {
		detected = displayExt(strings.ToLower(file.Ext()))
	}
	return Failure{
		Kind:    KindFileTypeNotAllowed,
		Value:   file.Filename,
		Message: fmt.Sprintf("File type %s is not allowed", detected),
	}
}

func displayExt(ext string) string {
	if ext == "" {
		return "(none)"
	}
	return ext
}
