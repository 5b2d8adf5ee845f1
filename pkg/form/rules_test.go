package form_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
)

func TestMaxFileSize(t *testing.T) {
	t.Parallel()

	rule := form.MaxFileSize(5)

	t.Run("at the limit", func(t *testing.T) {
		t.Parallel()
		file := form.NewUploadedFile(tempUpload(t, "a.txt", []byte("12345")))
		assert.NoError(t, rule(context.Background(), file))
	})

	t.Run("above the limit", func(t *testing.T) {
		t.Parallel()
		file := form.NewUploadedFile(tempUpload(t, "a.txt", []byte("123456")))

		err := rule(context.Background(), file)

		var failure form.Failure
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, form.KindFileTooLarge, failure.Kind)
		assert.Equal(t, "a.txt", failure.Value)
		assert.EqualValues(t, 5, failure.Limit)
		assert.Equal(t, "File size exceeds maximum size of 5 bytes", failure.Message)
	})
}

func TestAllowedTypes(t *testing.T) {
	t.Parallel()

	rule := form.AllowedTypes("image/png", "application/pdf")

	t.Run("sniffed type allowed", func(t *testing.T) {
		t.Parallel()
		file := form.NewUploadedFile(tempUpload(t, "scan.pdf", []byte("%PDF-1.4\n")))
		assert.NoError(t, rule(context.Background(), file))
	})

	t.Run("declared extension is not trusted", func(t *testing.T) {
		t.Parallel()
		file := form.NewUploadedFile(tempUpload(t, "fake.png", []byte("just text")))

		err := rule(context.Background(), file)

		var failure form.Failure
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, form.KindFileTypeNotAllowed, failure.Kind)
		assert.Equal(t, "File type text/plain is not allowed", failure.Message)
	})
}

func TestImagesOnly(t *testing.T) {
	t.Parallel()

	rule := form.ImagesOnly()

	tests := []struct {
		name     string
		filename string
		content  []byte
		wantErr  bool
	}{
		{name: "png content", filename: "avatar.png", content: pngHeader},
		{name: "png content with wrong extension", filename: "avatar.bin", content: pngHeader},
		{name: "svg falls back to extension", filename: "logo.svg", content: []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`)},
		{name: "pdf named like an image", filename: "avatar.png", content: []byte("%PDF-1.4\n"), wantErr: true},
		{name: "text file", filename: "notes.txt", content: []byte("hello"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := rule(context.Background(), form.NewUploadedFile(tempUpload(t, tt.filename, tt.content)))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var failure form.Failure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, form.KindFileTypeNotAllowed, failure.Kind)
		})
	}
}

func TestAllowedExtensions(t *testing.T) {
	t.Parallel()

	rule := form.AllowedExtensions("PDF", ".docx")

	assert.NoError(t, rule(context.Background(), form.UploadedFile{Filename: "cv.pdf"}))
	assert.NoError(t, rule(context.Background(), form.UploadedFile{Filename: "CV.DOCX"}))

	err := rule(context.Background(), form.UploadedFile{Filename: "cv.exe"})
	assert.EqualError(t, err, "File type .exe is not allowed")

	err = rule(context.Background(), form.UploadedFile{Filename: "README"})
	assert.EqualError(t, err, "File type (none) is not allowed")
}

func TestFileField_Check(t *testing.T) {
	t.Parallel()

	t.Run("every file is checked and every failure reported", func(t *testing.T) {
		t.Parallel()

		files := form.NewFiles(map[string][]form.RawFile{"docs": {
			tempUpload(t, "a.txt", []byte("too long")),
			tempUpload(t, "b.txt", []byte("ok")),
			tempUpload(t, "c.exe", []byte("too long")),
		}})

		f := form.Uploads("docs").Check(form.MaxFileSize(4), form.AllowedExtensions("txt"))
		err := f.Validate(context.Background(), nil, files)

		var fe *form.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, []string{
			"File size exceeds maximum size of 4 bytes",
			"File size exceeds maximum size of 4 bytes",
			"File type .exe is not allowed",
		}, fe.Messages)
		assert.True(t, fe.Has(form.KindFileTooLarge))
		assert.True(t, fe.Has(form.KindFileTypeNotAllowed))
	})

	t.Run("plain errors from custom rules", func(t *testing.T) {
		t.Parallel()

		files := form.NewFiles(map[string][]form.RawFile{"file": {tempUpload(t, "a.txt", []byte("x"))}})
		f := form.Upload("file").Check(func(context.Context, form.UploadedFile) error {
			return errors.New("scanner rejected the file")
		})

		err := f.Validate(context.Background(), nil, files)

		var fe *form.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, []string{"scanner rejected the file"}, fe.Messages)
		assert.True(t, fe.Has(form.KindCustom))
	})

	t.Run("check appends rules on a copy", func(t *testing.T) {
		t.Parallel()

		base := form.Upload("file").Check(form.AllowedExtensions("txt"))
		_ = base.Check(form.MaxFileSize(0))

		files := form.NewFiles(map[string][]form.RawFile{"file": {tempUpload(t, "a.txt", []byte("x"))}})
		require.NoError(t, base.Validate(context.Background(), nil, files))
	})
}
