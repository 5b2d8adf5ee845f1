package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes translation file content into language -> key tree.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(ctx context.Context, content []byte) (map[string]map[string]any, error)

func (f ParserFunc) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	return f(ctx, content)
}

// ParserForFile picks a parser from the file extension.
// Returns nil for anything but .json, .yaml and .yml.
func ParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "json":
		return JSONParser()
	case "yaml", "yml":
		return YAMLParser()
	default:
		return nil
	}
}

// JSONParser decodes {"en": {"form": {"max_length": "..."}}} documents.
func JSONParser() Parser {
	return ParserFunc(func(ctx context.Context, content []byte) (map[string]map[string]any, error) {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrParsingCancelled, err)
		}
		var data map[string]any
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, errors.Join(ErrFailedToParseJSON, err)
		}
		return byLanguage(data)
	})
}

// YAMLParser decodes the YAML equivalent of the JSON layout.
func YAMLParser() Parser {
	return ParserFunc(func(ctx context.Context, content []byte) (map[string]map[string]any, error) {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrParsingCancelled, err)
		}
		var data map[string]any
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, errors.Join(ErrFailedToParseYAML, err)
		}
		return byLanguage(data)
	})
}

func byLanguage(data map[string]any) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		tree, ok := asTree(val)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", ErrInvalidStructure, lang, val)
		}
		result[lang] = tree
	}
	return result, nil
}

// asTree normalizes map[any]any nodes that some decoders produce.
func asTree(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if ks, ok := k.(string); ok {
				out[ks] = val
			}
		}
		return out, true
	default:
		return nil, false
	}
}
