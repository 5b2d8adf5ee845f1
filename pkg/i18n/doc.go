// Package i18n loads message catalogs and translates dot separated keys
// with %{name} placeholders. It feeds form.Localized so validation messages
// follow the request language.
//
// Catalogs are keyed by language at the top level:
//
//	en:
//	  form:
//	    missing_field: "%{field} is required"
//	    max_length: "%{field} must be at most %{limit} characters"
//
// Load them from memory, a file, or a directory in any fs.FS:
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales, "locales"),
//		i18n.WithDefaultLanguage("en"),
//	)
//
// Middleware stores the request language in the context; Tc reads it back.
package i18n
