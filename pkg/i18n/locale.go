package i18n

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type localeContextKey struct{}

// SetLocale stores the locale in ctx.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the locale stored in ctx, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	locale, _ := ctx.Value(localeContextKey{}).(string)
	if locale == "" {
		return DefaultLanguage
	}
	return locale
}

// maxAcceptLanguageLength bounds the header size handed to the parser.
const maxAcceptLanguageLength = 4096

// ParseAcceptLanguage picks the best supported language for an
// Accept-Language header, or defaultLang when nothing matches.
func ParseAcceptLanguage(header string, supported []string, defaultLang string) string {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return defaultLang
	}
	return matchLanguage(supported, defaultLang, tags...)
}

func matchLanguage(supported []string, defaultLang string, tags ...language.Tag) string {
	if len(supported) == 0 || len(tags) == 0 {
		return defaultLang
	}

	supportedTags := make([]language.Tag, 0, len(supported))
	codes := make([]string, 0, len(supported))
	for _, s := range supported {
		tag, err := language.Parse(s)
		if err != nil {
			continue
		}
		supportedTags = append(supportedTags, tag)
		codes = append(codes, s)
	}
	if len(supportedTags) == 0 {
		return defaultLang
	}

	_, idx, conf := language.NewMatcher(supportedTags).Match(tags...)
	if conf == language.No {
		return defaultLang
	}
	return codes[idx]
}

// Middleware stores the request language in the context. The "lang" query
// parameter wins over the "lang" cookie, which wins over Accept-Language.
// Values outside supported are ignored.
func Middleware(supported []string, defaultLang string) func(http.Handler) http.Handler {
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := requestLanguage(r, supported, defaultLang)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}

func requestLanguage(r *http.Request, supported []string, defaultLang string) string {
	explicit := r.URL.Query().Get("lang")
	if explicit == "" {
		if c, err := r.Cookie("lang"); err == nil {
			explicit = c.Value
		}
	}
	if explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			if lang := matchLanguage(supported, "", tag); lang != "" {
				return lang
			}
		}
	}
	return ParseAcceptLanguage(r.Header.Get("Accept-Language"), supported, defaultLang)
}
