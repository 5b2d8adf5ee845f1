package binder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/upload"
)

// Parser turns HTTP requests into raw form input.
type Parser struct {
	maxMemory   int64
	maxJSONSize int64
	maxFiles    int
	tempDir     string
	log         *slog.Logger
}

// New creates a Parser with the given options.
func New(opts ...Option) *Parser {
	p := &Parser{
		maxMemory:   DefaultMaxMemory,
		maxJSONSize: DefaultMaxJSONSize,
		maxFiles:    DefaultMaxFiles,
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is a shortcut for New(opts...).Parse(r).
func Parse(r *http.Request, opts ...Option) (*Input, error) {
	return New(opts...).Parse(r)
}

// Input is the raw input of one request. Files are materialized as
// temporary files owned by Input; call Cleanup once the request is done.
type Input struct {
	Values *form.Values
	Files  *form.Files

	mu        sync.Mutex
	paths     []string
	multipart *multipart.Form
}

// Cleanup removes every temporary file created for the request.
// It is safe to call more than once.
func (in *Input) Cleanup() error {
	in.mu.Lock()
	defer in.mu.Unlock()

	var errs []error
	for _, path := range in.paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	in.paths = nil

	if in.multipart != nil {
		if err := in.multipart.RemoveAll(); err != nil {
			errs = append(errs, err)
		}
		in.multipart = nil
	}
	return errors.Join(errs...)
}

// Parse reads query parameters and, for requests with a body, urlencoded,
// multipart or flat JSON data. Multipart file parts are copied into the temp dir.
func (p *Parser) Parse(r *http.Request) (*Input, error) {
	in := &Input{
		Values: form.NewValues(nil),
		Files:  form.NewFiles(nil),
	}

	if !hasBody(r) {
		addValues(in.Values, r.URL.Query())
		return in, nil
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, ErrMissingContentType
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		addValues(in.Values, r.Form)

	case "multipart/form-data":
		if err := r.ParseMultipartForm(p.maxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		in.multipart = r.MultipartForm
		addValues(in.Values, r.MultipartForm.Value)
		addValues(in.Values, r.URL.Query())
		if err := p.materialize(in, r.MultipartForm.File); err != nil {
			_ = in.Cleanup()
			return nil, err
		}

	case "application/json":
		if err := p.decodeJSON(r, in.Values); err != nil {
			return nil, err
		}
		addValues(in.Values, r.URL.Query())

	default:
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedMediaType, mediaType)
	}

	p.log.DebugContext(r.Context(), "form input parsed",
		slog.String("media_type", mediaType),
		slog.Int("files", len(in.paths)),
	)
	return in, nil
}

func (p *Parser) materialize(in *Input, files map[string][]*multipart.FileHeader) error {
	total := 0
	for _, headers := range files {
		total += len(headers)
	}
	if total > p.maxFiles {
		return fmt.Errorf("%w: %d files, limit is %d", ErrTooManyFiles, total, p.maxFiles)
	}

	dir := p.dir()

	for name, headers := range files {
		for _, header := range headers {
			raw, err := p.store(dir, header)
			if raw.TempPath != "" {
				in.paths = append(in.paths, raw.TempPath)
			}
			if err != nil {
				return err
			}
			in.Files.Add(name, raw)
		}
	}
	return nil
}

// store copies one file part into dir under a random name that keeps the
// original extension, so content checks can fall back to it.
func (p *Parser) store(dir string, header *multipart.FileHeader) (form.RawFile, error) {
	src, err := header.Open()
	if err != nil {
		return form.RawFile{}, fmt.Errorf("%w: open %q: %v", ErrFailedToStoreFile, header.Filename, err)
	}
	defer func() { _ = src.Close() }()

	ext := filepath.Ext(upload.SanitizeFilename(header.Filename))
	path := filepath.Join(dir, "upload-"+uuid.NewString()+ext)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return form.RawFile{}, fmt.Errorf("%w: create %q: %v", ErrFailedToStoreFile, header.Filename, err)
	}

	raw := form.RawFile{
		Filename: header.Filename,
		TempPath: path,
		Header:   header.Header,
	}

	n, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return raw, fmt.Errorf("%w: write %q: %v", ErrFailedToStoreFile, header.Filename, err)
	}

	raw.Size = n
	p.log.Debug("upload materialized", logger.Filename(header.Filename), slog.Int64("size", n))
	return raw, nil
}

// CheckTempDir verifies that uploads can be materialized. It fits readiness
// probes.
func (p *Parser) CheckTempDir(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	probe, err := os.CreateTemp(p.dir(), "upload-probe-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToStoreFile, err)
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}

func (p *Parser) dir() string {
	if p.tempDir != "" {
		return p.tempDir
	}
	return os.TempDir()
}

func hasBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return false
	}
	return r.Body != nil && r.Body != http.NoBody
}

func addValues(dst *form.Values, src map[string][]string) {
	for name, list := range src {
		dst.Add(name, list...)
	}
}
