package binder_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/form"
)

type part struct {
	field    string
	filename string
	content  string
}

func multipartRequest(t *testing.T, target string, values map[string][]string, files []part) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	for name, list := range values {
		for _, v := range list {
			require.NoError(t, writer.WriteField(name, v))
		}
	}
	for _, f := range files {
		w, err := writer.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestParse_Query(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/search?q=go&tag=a&tag=b", nil)

	in, err := binder.Parse(req)
	require.NoError(t, err)
	defer in.Cleanup()

	q, ok := in.Values.Take("q")
	assert.True(t, ok)
	assert.Equal(t, []string{"go"}, q)

	tags, _ := in.Values.Take("tag")
	assert.Equal(t, []string{"a", "b"}, tags)
	assert.Empty(t, in.Files.Names())
}

func TestParse_URLEncoded(t *testing.T) {
	t.Parallel()

	data := url.Values{"name": {"John"}, "tags": {"x", "y"}}
	req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	in, err := binder.Parse(req)
	require.NoError(t, err)
	defer in.Cleanup()

	assert.Equal(t, []string{"name", "tags"}, in.Values.Names())
	tags, _ := in.Values.Take("tags")
	assert.Equal(t, []string{"x", "y"}, tags)
}

func TestParse_Multipart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	req := multipartRequest(t, "/profile?source=web",
		map[string][]string{"name": {"John"}},
		[]part{
			{field: "docs", filename: "a.txt", content: "first"},
			{field: "docs", filename: "../b.txt", content: "second"},
			{field: "avatar", filename: "me.png", content: "\x89PNG\r\n\x1a\n"},
		},
	)

	in, err := binder.New(binder.WithTempDir(dir)).Parse(req)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "source"}, in.Values.Names())
	assert.Equal(t, []string{"avatar", "docs"}, in.Files.Names())

	docs, ok := in.Files.Take("docs")
	require.True(t, ok)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.txt", docs[0].Filename)
	assert.Equal(t, "../b.txt", docs[1].Filename)
	assert.EqualValues(t, len("first"), docs[0].Size)
	assert.Equal(t, dir, filepath.Dir(docs[0].TempPath))
	assert.True(t, strings.HasSuffix(docs[0].TempPath, ".txt"))

	data, err := os.ReadFile(docs[1].TempPath)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	avatar, _ := in.Files.Take("avatar")
	require.Len(t, avatar, 1)

	require.NoError(t, in.Cleanup())
	_, err = os.Stat(docs[0].TempPath)
	assert.True(t, os.IsNotExist(err))

	// Cleanup is idempotent.
	assert.NoError(t, in.Cleanup())
}

func TestParse_MultipartFeedsFields(t *testing.T) {
	t.Parallel()

	req := multipartRequest(t, "/upload",
		map[string][]string{"title": {"Report"}},
		[]part{{field: "file", filename: "file.txt", content: "Hello World"}},
	)

	in, err := binder.New(binder.WithTempDir(t.TempDir())).Parse(req)
	require.NoError(t, err)
	defer in.Cleanup()

	title := form.String("title")
	file := form.Upload("file").Check(form.MaxFileSize(1 << 10))

	require.NoError(t, title.Validate(context.Background(), in.Values, in.Files))
	require.NoError(t, file.Validate(context.Background(), in.Values, in.Files))

	assert.Equal(t, "Report", title.Value())
	uploaded := file.Value()
	data, err := uploaded.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Hello World", string(data))
}

func TestParse_JSON(t *testing.T) {
	t.Parallel()

	t.Run("flat object", func(t *testing.T) {
		t.Parallel()

		body := `{"name":"John","age":42,"admin":false,"tags":["a","b"],"nickname":null}`
		req := httptest.NewRequest(http.MethodPost, "/profile?lang=es", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")

		in, err := binder.Parse(req)
		require.NoError(t, err)
		defer in.Cleanup()

		assert.Equal(t, []string{"admin", "age", "lang", "name", "tags"}, in.Values.Names())

		age, _ := in.Values.Take("age")
		assert.Equal(t, []string{"42"}, age)
		admin, _ := in.Values.Take("admin")
		assert.Equal(t, []string{"false"}, admin)
		tags, _ := in.Values.Take("tags")
		assert.Equal(t, []string{"a", "b"}, tags)
	})

	tests := []struct {
		name string
		body string
	}{
		{name: "nested object", body: `{"address":{"city":"Paris"}}`},
		{name: "empty body", body: ``},
		{name: "not an object", body: `["a"]`},
		{name: "trailing data", body: `{"a":"b"} {"c":"d"}`},
		{name: "malformed", body: `{"a":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			_, err := binder.Parse(req)
			assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
		})
	}

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`))
		req.Header.Set("Content-Type", "application/json")

		_, err := binder.Parse(req, binder.WithMaxJSONSize(16))
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=John"))
		_, err := binder.Parse(req)
		assert.ErrorIs(t, err, binder.ErrMissingContentType)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("<xml/>"))
		req.Header.Set("Content-Type", "application/xml")
		_, err := binder.Parse(req)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("too many files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		req := multipartRequest(t, "/", nil, []part{
			{field: "docs", filename: "a.txt", content: "a"},
			{field: "docs", filename: "b.txt", content: "b"},
		})

		_, err := binder.New(binder.WithTempDir(dir), binder.WithMaxFiles(1)).Parse(req)
		assert.ErrorIs(t, err, binder.ErrTooManyFiles)

		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})

	t.Run("broken multipart", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("garbage"))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=nope")
		_, err := binder.Parse(req)
		assert.ErrorIs(t, err, binder.ErrInvalidForm)
	})

	t.Run("temp dir not writable", func(t *testing.T) {
		t.Parallel()

		req := multipartRequest(t, "/", nil, []part{{field: "f", filename: "a.txt", content: "a"}})
		_, err := binder.New(binder.WithTempDir("/nonexistent/formkit")).Parse(req)
		assert.ErrorIs(t, err, binder.ErrFailedToStoreFile)
	})
}

func TestWithConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	req := multipartRequest(t, "/", nil, []part{
		{field: "a", filename: "a.txt", content: "a"},
		{field: "b", filename: "b.txt", content: "b"},
	})

	_, err := binder.New(binder.WithConfig(binder.Config{MaxFiles: 1, TempDir: dir})).Parse(req)
	assert.ErrorIs(t, err, binder.ErrTooManyFiles)
}

func TestCheckTempDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, binder.New(binder.WithTempDir(dir)).CheckTempDir(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = binder.New(binder.WithTempDir("/nonexistent/formkit")).CheckTempDir(context.Background())
	assert.ErrorIs(t, err, binder.ErrFailedToStoreFile)
}
