package form_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/form"
)

func TestValues(t *testing.T) {
	t.Parallel()

	src := url.Values{"a": {"1"}, "b": {"2", "3"}}
	values := form.NewValues(src)

	// The source is copied.
	src["a"][0] = "changed"

	values.Add("b", "4")
	assert.Equal(t, []string{"a", "b"}, values.Names())

	got, ok := values.Take("b")
	assert.True(t, ok)
	assert.Equal(t, []string{"2", "3", "4"}, got)

	_, ok = values.Take("b")
	assert.False(t, ok)

	got, ok = values.Take("a")
	assert.True(t, ok)
	assert.Equal(t, []string{"1"}, got)
	assert.Empty(t, values.Names())

	var zero form.Values
	zero.Add("late", "x")
	assert.Equal(t, []string{"late"}, zero.Names())

	var nilValues *form.Values
	assert.NotPanics(t, func() { nilValues.Add("a", "b") })
	_, ok = nilValues.Take("a")
	assert.False(t, ok)
	assert.Nil(t, nilValues.Names())
}

func TestFiles(t *testing.T) {
	t.Parallel()

	files := form.NewFiles(nil)
	files.Add("docs", form.RawFile{Filename: "a.txt"}, form.RawFile{Filename: "b.txt"})

	got, ok := files.Take("docs")
	assert.True(t, ok)
	assert.Len(t, got, 2)
	assert.Equal(t, "a.txt", got[0].Filename)

	var nilFiles *form.Files
	assert.NotPanics(t, func() { nilFiles.Add("docs", form.RawFile{Filename: "a.txt"}) })
	_, ok = nilFiles.Take("docs")
	assert.False(t, ok)
	assert.Nil(t, nilFiles.Names())
}

func TestShapes(t *testing.T) {
	t.Parallel()

	v, ok := form.One[int]().Drain([]int{3, 4})
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = form.One[int]().Drain(nil)
	assert.False(t, ok)

	p, ok := form.Maybe[int]().Drain(nil)
	assert.True(t, ok)
	assert.Nil(t, p)

	list, ok := form.All[int]().Drain([]int{1, 2})
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2}, list)

	_, ok = form.All[int]().Drain(nil)
	assert.False(t, ok)

	list, ok = form.MaybeAll[int]().Drain(nil)
	assert.True(t, ok)
	assert.Nil(t, list)

	assert.False(t, form.One[int]().Optional())
	assert.True(t, form.Maybe[int]().Optional())
	assert.False(t, form.All[int]().Optional())
	assert.True(t, form.MaybeAll[int]().Optional())
	assert.Empty(t, form.Maybe[int]().Items(nil))
}

func TestMessages(t *testing.T) {
	t.Parallel()

	assert.Nil(t, form.Messages(nil))
	assert.Equal(t, []string{"a", "b"}, form.Messages(form.Reject("a", "b")))
	assert.Equal(t, []string{"boom"}, form.Messages(errors.New("boom")))

	fe := &form.FieldError{Field: "name", Messages: []string{"x", "y"}}
	assert.EqualError(t, fe, "name: x; y")
	assert.True(t, form.IsValidationError(fe))
	assert.False(t, form.IsValidationError(errors.New("other")))
}
