package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/upload"
)

const (
	maxAvatarSize   = 2 << 20
	maxDocumentSize = 10 << 20
	maxDocuments    = 3
	maxBioLength    = 500
)

type profileHandler struct {
	parser *binder.Parser
	tr     *i18n.Translator
	log    *slog.Logger
}

type fileInfo struct {
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	SHA256      string `json:"sha256"`
}

type profileResponse struct {
	Name      string     `json:"name"`
	Nickname  *string    `json:"nickname,omitempty"`
	Bio       *string    `json:"bio,omitempty"`
	Tags      []string   `json:"tags"`
	Avatar    *fileInfo  `json:"avatar,omitempty"`
	Documents []fileInfo `json:"documents"`
}

func (h *profileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, err := h.parser.Parse(r)
	if err != nil {
		writeJSON(w, parseErrorStatus(err), map[string]string{"error": err.Error()})
		return
	}
	defer func() {
		if err := in.Cleanup(); err != nil {
			h.log.WarnContext(ctx, "failed to remove uploads", logger.Error(err))
		}
	}()

	localized := form.Localized(h.tr)

	name := form.String("name").MinLength(2).MaxLength(50).OnError(localized).WithLogger(h.log)
	nickname := form.OptionalString("nickname").MaxLength(30).OnError(localized).WithLogger(h.log)
	bio := form.OptionalString("bio").MaxLength(maxBioLength).AfterConvert(plainBio).OnError(localized).WithLogger(h.log)
	tags := form.OptionalStrings("tags").WithLogger(h.log)
	avatar := form.OptionalUpload("avatar").
		Check(form.ImagesOnly(), form.MaxFileSize(maxAvatarSize)).
		OnError(localized).
		WithLogger(h.log)
	documents := form.Uploads("documents").
		Check(form.MaxFileSize(maxDocumentSize)).
		AfterConvert(limitDocuments).
		OnError(localized).
		WithLogger(h.log)

	errs := validateAll(ctx, in,
		name.Duplicate(),
		nickname.Duplicate(),
		bio.Duplicate(),
		tags.Duplicate(),
		avatar.Duplicate(),
		documents.Duplicate(),
	)
	if len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}

	resp := profileResponse{
		Name:     name.Value(),
		Nickname: nickname.Value(),
		Bio:      bio.Value(),
		Tags:     tags.Value(),
	}

	if a := avatar.Value(); a != nil {
		info, err := describe(*a)
		if err != nil {
			h.fail(ctx, w, err)
			return
		}
		resp.Avatar = &info
	}

	for _, doc := range documents.Value() {
		info, err := describe(doc)
		if err != nil {
			h.fail(ctx, w, err)
			return
		}
		resp.Documents = append(resp.Documents, info)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *profileHandler) fail(ctx context.Context, w http.ResponseWriter, err error) {
	h.log.ErrorContext(ctx, "failed to inspect upload", logger.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

// validateAll runs every field concurrently and collects messages per field.
// One failing field does not stop the others.
func validateAll(ctx context.Context, in *binder.Input, fields ...form.Field) map[string][]string {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs = make(map[string][]string)
	)

	for _, f := range fields {
		g.Go(func() error {
			if err := f.Validate(ctx, in.Values, in.Files); err != nil {
				mu.Lock()
				errs[f.Name()] = form.Messages(err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errs
}

func limitDocuments(_ context.Context, docs []form.UploadedFile) ([]form.UploadedFile, error) {
	if len(docs) > maxDocuments {
		return nil, form.Reject("profile.too_many_documents")
	}
	return docs, nil
}

func describe(f form.UploadedFile) (fileInfo, error) {
	size, err := f.FileSize()
	if err != nil {
		return fileInfo{}, err
	}
	sum, err := upload.Hash(f.TempPath, nil)
	if err != nil {
		return fileInfo{}, err
	}
	contentType, err := upload.DetectMIMEType(f.TempPath)
	if err != nil {
		return fileInfo{}, err
	}
	return fileInfo{
		Filename:    f.SafeName(),
		Size:        size,
		ContentType: contentType,
		SHA256:      sum,
	}, nil
}

func parseErrorStatus(err error) int {
	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, binder.ErrTooManyFiles):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
