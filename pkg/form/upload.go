package form

import (
	"fmt"
	"io"
	"mime"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/formkit/pkg/upload"
)

// RawFile describes an uploaded file that the request parser already wrote to
// temporary storage. Size and Header are optional.
type RawFile struct {
	// Filename is the original filename provided by the client
	Filename string

	// TempPath points at the materialized temporary file
	TempPath string

	// Size is the size of the file in bytes, zero when unknown
	Size int64

	// Header contains the MIME header fields of the file part, if any
	Header textproto.MIMEHeader
}

// UploadedFile is the validated view of an uploaded file.
// The temporary file belongs to the request parser that created it; this
// handle only reads from it.
type UploadedFile struct {
	Filename string
	TempPath string
	Size     int64
	Header   textproto.MIMEHeader
}

// NewUploadedFile builds the read-only view for a raw descriptor.
func NewUploadedFile(raw RawFile) UploadedFile {
	return UploadedFile{
		Filename: raw.Filename,
		TempPath: raw.TempPath,
		Size:     raw.Size,
		Header:   raw.Header,
	}
}

// Open opens the temporary file for reading.
func (f UploadedFile) Open() (*os.File, error) {
	file, err := os.Open(f.TempPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", upload.ErrFailedToOpenFile, err)
	}
	return file, nil
}

// ReadAll reads the whole temporary file into memory.
func (f UploadedFile) ReadAll() ([]byte, error) {
	file, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", upload.ErrFailedToReadFile, err)
	}
	return data, nil
}

// ContentType returns the MIME type declared by the client, falling back to
// the type implied by the file extension.
func (f UploadedFile) ContentType() string {
	if ct := f.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err == nil {
			return mediaType
		}
	}
	return mime.TypeByExtension(f.Ext())
}

// Ext returns the extension of the original filename including the dot.
func (f UploadedFile) Ext() string {
	return filepath.Ext(f.Filename)
}

// SafeName returns the original filename stripped of path components.
func (f UploadedFile) SafeName() string {
	return upload.SanitizeFilename(f.Filename)
}

// FileSize returns Size when the parser reported it, otherwise the size of the
// temporary file on disk.
func (f UploadedFile) FileSize() (int64, error) {
	if f.Size > 0 {
		return f.Size, nil
	}
	return upload.Size(f.TempPath)
}
