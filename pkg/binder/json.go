package binder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20

// decodeJSON reads a flat JSON object into text values.
//
// Strings, numbers and booleans become single values, arrays of those become
// multiple values in order. A null member is treated as not submitted.
// Nested objects are rejected: form fields address inputs by a single name.
func (p *Parser) decodeJSON(r *http.Request, dst *form.Values) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, p.maxJSONSize+1))
	if err != nil {
		return fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
	}
	if int64(len(body)) > p.maxJSONSize {
		return fmt.Errorf("%w: request body too large (max %d bytes)", ErrFailedToParseJSON, p.maxJSONSize)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var members map[string]any
	if err := decoder.Decode(&members); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}
		return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
	}

	for name, raw := range members {
		values, err := jsonValues(raw)
		if err != nil {
			return fmt.Errorf("%w: member %q: %v", ErrFailedToParseJSON, name, err)
		}
		if values != nil {
			dst.Add(name, values...)
		}
	}
	return nil
}

func jsonValues(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, err := jsonScalar(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, err := jsonScalar(v)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

func jsonScalar(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case bool:
		if s {
			return "true", nil
		}
		return "false", nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}
