// Package binder converts HTTP requests into the raw input consumed by
// form fields.
//
// Query parameters, urlencoded, multipart and flat JSON bodies are supported.
// Every multipart file part is copied into a temporary file with a random
// name, and the resulting form.RawFile points at it. The files belong to the
// returned Input:
//
//	in, err := binder.Parse(r, binder.WithMaxFiles(5))
//	if err != nil {
//		return err
//	}
//	defer in.Cleanup()
//
//	avatar := form.Upload("avatar").Check(form.ImagesOnly())
//	if err := avatar.Validate(r.Context(), in.Values, in.Files); err != nil {
//		return err
//	}
//
// Limits come from options or from Config, which reads FORM_MAX_MEMORY,
// FORM_MAX_JSON_SIZE, FORM_MAX_FILES and FORM_TEMP_DIR through the config
// package.
package binder
