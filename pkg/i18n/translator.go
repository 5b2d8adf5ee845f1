package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when neither the request nor the options name one.
const DefaultLanguage = "en"

// Translator resolves dot separated keys against nested translation trees.
type Translator struct {
	mu             sync.RWMutex
	translations   map[string]map[string]any
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
}

// NewTranslator loads translations through adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(translations) == 0 {
		return nil, ErrNoTranslations
	}
	for lang := range translations {
		if _, err := language.Parse(lang); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
		}
	}

	t.translations = translations
	t.logger.InfoContext(ctx, "translations loaded", "languages", t.languages())
	return t, nil
}

func (t *Translator) languages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// SupportedLanguages returns the loaded language codes, sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.languages()
}

// HasTranslation reports whether key resolves to a string for lang.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.lookup(lang, key)
	return ok
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	tree, ok := t.translations[lang]
	if !ok {
		return "", false
	}

	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := tree[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			switch v := val.(type) {
			case string:
				return v, true
			case fmt.Stringer:
				return v.String(), true
			default:
				return "", false
			}
		}
		if tree, ok = asTree(val); !ok {
			return "", false
		}
	}
	return "", false
}

// T translates key for lang, substituting %{name} placeholders from args
// given as name, value pairs. An unknown lang falls back to the default
// language; an unknown key yields the key itself, or "" when fallback to
// key is disabled.
//
//	// "form.max_length": "%{field} is longer than %{limit} characters"
//	t.T("en", "form.max_length", "field", "bio", "limit", "140")
func (t *Translator) T(lang, key string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, candidate := range []string{lang, t.defaultLang} {
		if tmpl, ok := t.lookup(candidate, key); ok {
			return substitute(tmpl, args)
		}
	}

	if t.missingLogMode {
		t.logger.Warn("translation not found", "lang", lang, "key", key)
	}
	if t.fallbackToKey {
		return substitute(key, args)
	}
	return ""
}

// Tc translates key using the locale stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Match returns the supported language closest to the given tags, or the
// default language when none is acceptable.
func (t *Translator) Match(tags ...language.Tag) string {
	return matchLanguage(t.SupportedLanguages(), t.defaultLang, tags...)
}

var placeholderRe = regexp.MustCompile(`%\{([^}]+)\}`)

func substitute(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
