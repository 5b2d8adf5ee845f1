package logger

import (
	"log/slog"
	"strconv"
)

// Field records a form field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Messages records validation messages as a group keyed by position.
// Returns an empty Attr when there are none.
func Messages(msgs []string) slog.Attr {
	if len(msgs) == 0 {
		return slog.Attr{}
	}
	as := make([]slog.Attr, 0, len(msgs))
	for i, m := range msgs {
		as = append(as, slog.String(strconv.Itoa(i), m))
	}
	return slog.Attr{Key: "messages", Value: slog.GroupValue(as...)}
}

// Filename records an uploaded file's original name under the key "filename".
func Filename(name string) slog.Attr {
	return slog.String("filename", name)
}

// Error records err under the key "error". Returns an empty Attr for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}
