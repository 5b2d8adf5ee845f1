package form

import (
	"maps"
	"slices"
	"sync"
)

// Values is the raw text input of a request: field name to the ordered list of
// submitted values. Each field takes its own entry exactly once.
// Values is safe for concurrent use; a nil *Values behaves as empty input.
type Values struct {
	mu sync.Mutex
	m  map[string][]string
}

// NewValues copies src into a new Values. url.Values can be passed directly.
func NewValues(src map[string][]string) *Values {
	v := &Values{m: make(map[string][]string, len(src))}
	for name, list := range src {
		v.m[name] = slices.Clone(list)
	}
	return v
}

// Add appends values for name, preserving arrival order.
// Adding to a nil *Values is a no-op.
func (v *Values) Add(name string, values ...string) {
	if v == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.m == nil {
		v.m = make(map[string][]string)
	}
	v.m[name] = append(v.m[name], values...)
}

// Take removes the entry for name and returns it.
// The boolean is false when the name was never submitted.
func (v *Values) Take(name string) ([]string, bool) {
	if v == nil {
		return nil, false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	list, ok := v.m[name]
	if ok {
		delete(v.m, name)
	}
	return list, ok
}

// Names returns the names that have not been taken yet, sorted.
func (v *Values) Names() []string {
	if v == nil {
		return nil
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Sorted(maps.Keys(v.m))
}

// Files is the raw file input of a request: field name to the ordered list of
// materialized uploads. Same take-once and nil contract as Values.
type Files struct {
	mu sync.Mutex
	m  map[string][]RawFile
}

// NewFiles copies src into a new Files.
func NewFiles(src map[string][]RawFile) *Files {
	f := &Files{m: make(map[string][]RawFile, len(src))}
	for name, list := range src {
		f.m[name] = slices.Clone(list)
	}
	return f
}

// Add appends file descriptors for name, preserving arrival order.
// Adding to a nil *Files is a no-op.
func (f *Files) Add(name string, files ...RawFile) {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.m == nil {
		f.m = make(map[string][]RawFile)
	}
	f.m[name] = append(f.m[name], files...)
}

// Take removes the entry for name and returns it.
func (f *Files) Take(name string) ([]RawFile, bool) {
	if f == nil {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	list, ok := f.m[name]
	if ok {
		delete(f.m, name)
	}
	return list, ok
}

// Names returns the names that have not been taken yet, sorted.
func (f *Files) Names() []string {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Sorted(maps.Keys(f.m))
}
