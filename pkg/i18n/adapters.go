package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
)

// TranslationAdapter loads translations from a source.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves translations from memory.
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return map[string]map[string]any{}, nil
	}
	return a.Data, nil
}

// FileAdapter loads a single JSON or YAML file.
type FileAdapter struct {
	path string
}

func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}
	parser := ParserForFile(a.path)
	if parser == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, a.path)
	}
	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return parser.Parse(ctx, content)
}

// FSAdapter loads every JSON and YAML file found directly in dir of fsys and
// merges them; later files override keys of earlier ones per language.
// Works with embed.FS and os.DirFS.
type FSAdapter struct {
	fsys fs.FS
	dir  string
}

func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir}
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	all := make(map[string]map[string]any)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}
		if entry.IsDir() {
			continue
		}
		parser := ParserForFile(entry.Name())
		if parser == nil {
			continue
		}

		name := path.Join(a.dir, entry.Name())
		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		parsed, err := parser.Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		for lang, tree := range parsed {
			if all[lang] == nil {
				all[lang] = make(map[string]any)
			}
			maps.Copy(all[lang], tree)
		}
	}
	return all, nil
}
