package binder

import "log/slog"

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20

// DefaultMaxFiles caps the number of file parts accepted per request.
const DefaultMaxFiles = 32

// Config holds request parsing limits. It can be loaded with config.Load.
type Config struct {
	MaxMemory   int64  `env:"FORM_MAX_MEMORY" envDefault:"10485760"`
	MaxJSONSize int64  `env:"FORM_MAX_JSON_SIZE" envDefault:"1048576"`
	MaxFiles    int    `env:"FORM_MAX_FILES" envDefault:"32"`
	TempDir     string `env:"FORM_TEMP_DIR"`
}

// Option configures a Parser.
type Option func(*Parser)

// WithConfig replaces all limits at once. Zero values keep the defaults.
func WithConfig(cfg Config) Option {
	return func(p *Parser) {
		if cfg.MaxMemory > 0 {
			p.maxMemory = cfg.MaxMemory
		}
		if cfg.MaxJSONSize > 0 {
			p.maxJSONSize = cfg.MaxJSONSize
		}
		if cfg.MaxFiles > 0 {
			p.maxFiles = cfg.MaxFiles
		}
		if cfg.TempDir != "" {
			p.tempDir = cfg.TempDir
		}
	}
}

// WithMaxMemory sets the in-memory part of multipart parsing.
func WithMaxMemory(n int64) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxMemory = n
		}
	}
}

// WithMaxJSONSize limits the size of JSON bodies.
func WithMaxJSONSize(n int64) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxJSONSize = n
		}
	}
}

// WithMaxFiles limits the number of uploaded files per request.
func WithMaxFiles(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxFiles = n
		}
	}
}

// WithTempDir sets where uploads are materialized. Defaults to os.TempDir.
func WithTempDir(dir string) Option {
	return func(p *Parser) {
		p.tempDir = dir
	}
}

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}
