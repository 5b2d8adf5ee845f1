package upload

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// sniffLen is the maximum number of bytes http.DetectContentType looks at.
const sniffLen = 512

var (
	imageMIMETypes = map[string]bool{
		"image/jpeg":    true,
		"image/jpg":     true,
		"image/png":     true,
		"image/gif":     true,
		"image/webp":    true,
		"image/svg+xml": true,
		"image/bmp":     true,
		"image/tiff":    true,
		"image/heic":    true,
		"image/heif":    true,
		"image/avif":    true,
		"image/jxl":     true,
		"image/x-icon":  true,
	}

	imageExtensions = []string{
		".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".bmp",
		".tiff", ".tif", ".heic", ".heif", ".avif", ".jxl", ".ico",
	}
)

// genericMIMETypes are answers of http.DetectContentType that say nothing about the format.
var genericMIMETypes = map[string]bool{
	"application/octet-stream": true,
	"text/plain":               true,
	"text/xml":                 true,
}

// Size returns the size of the file at path.
func Size(path string) (int64, error) {
	info, err := stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// DetectMIMEType sniffs the media type of the file at path from its first
// bytes rather than trusting the extension. Parameters such as charset are
// stripped, so a text file yields "text/plain".
func DetectMIMEType(path string) (string, error) {
	if _, err := stat(path); err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = file.Close() }()

	buffer := make([]byte, sniffLen)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}

	detected := http.DetectContentType(buffer[:n])
	mediaType, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToDetectMIMEType, err)
	}
	return mediaType, nil
}

// ValidateSize checks that the file at path is not larger than maxBytes.
func ValidateSize(path string, maxBytes int64) error {
	size, err := Size(path)
	if err != nil {
		return err
	}
	if size > maxBytes {
		return fmt.Errorf("file size %d bytes exceeds %d bytes limit: %w", size, maxBytes, ErrFileTooLarge)
	}
	return nil
}

// ValidateMIMEType checks that the sniffed type of the file at path is one of
// allowedTypes. Passing no types allows everything.
func ValidateMIMEType(path string, allowedTypes ...string) error {
	if len(allowedTypes) == 0 {
		return nil
	}

	mimeType, err := DetectMIMEType(path)
	if err != nil {
		return err
	}

	if slices.Contains(allowedTypes, mimeType) {
		return nil
	}

	return &MIMETypeError{Detected: mimeType, Allowed: allowedTypes}
}

// IsImage reports whether the file at path is an image.
// The extension of filename is consulted only when sniffing is inconclusive,
// which is the case for formats like SVG or HEIC.
func IsImage(path, filename string) bool {
	mimeType, err := DetectMIMEType(path)
	if err == nil && !genericMIMETypes[mimeType] {
		return imageMIMETypes[mimeType]
	}
	if err != nil && !errors.Is(err, ErrFailedToDetectMIMEType) {
		return false
	}
	return slices.Contains(imageExtensions, strings.ToLower(filepath.Ext(filename)))
}

// IsPDF reports whether the file at path is a PDF document.
func IsPDF(path string) bool {
	mimeType, err := DetectMIMEType(path)
	return err == nil && mimeType == "application/pdf"
}

// Hash calculates the hex encoded hash of the file content.
// A nil h defaults to SHA256.
func Hash(path string, h hash.Hash) (string, error) {
	if h == nil {
		h = sha256.New()
	}

	if _, err := stat(path); err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToHashFile, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// SanitizeFilename removes path components and NUL bytes from a client
// supplied filename. Returns "unnamed" for empty or special directory names.
//
// Example:
//
//	safe := upload.SanitizeFilename("../../../etc/passwd") // "passwd"
//	safe = upload.SanitizeFilename("C:\\Windows\\file.txt") // "file.txt"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}

func stat(path string) (fs.FileInfo, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	return info, nil
}
