package form

import (
	"context"
	"sort"
)

// Translator resolves a message key for the locale carried by ctx.
// Arguments are key/value pairs substituted into named placeholders.
// *i18n.Translator satisfies it.
type Translator interface {
	Tc(ctx context.Context, key string, args ...string) string
}

// Localized returns an ErrorHandler that translates failures through tr.
//
// Built-in failures are looked up by Failure.TranslationKey with the field,
// value and limit placeholders. Custom failures use their message as the key,
// so secondary validators can return keys instead of sentences. Whenever the
// translator has nothing better than the key itself, the defaults are kept.
func Localized(tr Translator) ErrorHandler {
	return func(ctx context.Context, f Failure, defaults []string) []string {
		key := f.TranslationKey()
		if f.Kind == KindCustom {
			key = f.Message
		}

		msg := tr.Tc(ctx, key, placeholderArgs(f.TranslationValues())...)
		if msg == "" || msg == key {
			return defaults
		}
		return []string{msg}
	}
}

func placeholderArgs(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, len(values)*2)
	for _, k := range keys {
		args = append(args, k, values[k])
	}
	return args
}

// Chain runs handlers in order, feeding each one the messages produced by the
// previous handler as its defaults. Nil handlers are skipped.
func Chain(handlers ...ErrorHandler) ErrorHandler {
	return func(ctx context.Context, f Failure, defaults []string) []string {
		msgs := defaults
		for _, h := range handlers {
			if h != nil {
				msgs = h(ctx, f, msgs)
			}
		}
		return msgs
	}
}
