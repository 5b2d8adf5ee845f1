// Package form turns raw, multi-valued form input into typed, validated
// values while collecting human-readable error messages.
//
// # Fields
//
// A field reads one form name and converts its values into a target type
// chosen through a Shape:
//
//	name := form.String("name").MaxLength(100)           // string, required
//	nick := form.OptionalString("nickname")              // *string
//	tags := form.OptionalStrings("tags")                 // []string, nil when absent
//	avatar := form.OptionalUpload("avatar").Check(form.ImagesOnly())
//	docs := form.Uploads("documents").Check(form.MaxFileSize(10 << 20))
//
// Every field implements Field, so a driver can keep them in one slice:
//
//	fields := []form.Field{name.Duplicate(), nick.Duplicate(), avatar.Duplicate()}
//	for _, f := range fields {
//		if err := f.Validate(ctx, values, files); err != nil {
//			errs[f.Name()] = form.Messages(err)
//		}
//	}
//
// Duplicates share the result slot with the original handle, so after a
// successful Validate the typed value is read from the original:
//
//	fmt.Println(name.Value())
//
// # Input
//
// Values and Files hold the raw request input. Each field takes its own
// entry exactly once, which lets independent fields validate in separate
// goroutines over the same input.
//
// # Results
//
// Value moves the stored value out of the field. Calling it before a
// successful Validate, or twice, is a bug in the calling code and panics
// with an error wrapping ErrNotValidated or ErrAlreadyConsumed. TryValue
// returns that error instead.
//
// # Errors
//
// Validate returns *FieldError, which lists the messages and the structured
// Failure behind each of them. OnError installs an ErrorHandler that sees
// the Failure and its default messages and returns the final messages;
// Localized builds one from a translator.
//
// AfterConvert adds a secondary validator that sees the converted value and
// may reject or replace it.
//
// Text length is checked against the first submitted value only, counting
// Unicode code points.
package form
