package i18n

import "errors"

var (
	ErrNilAdapter = errors.New("translation adapter is nil")

	// Parsing
	ErrParsingCancelled  = errors.New("translation parsing cancelled")
	ErrFailedToParseJSON = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
	ErrInvalidStructure  = errors.New("invalid translation structure")
	ErrUnsupportedFormat = errors.New("unsupported translation file format")

	// Loading
	ErrLoadingCancelled = errors.New("loading translations cancelled")
	ErrFailedToReadFile = errors.New("failed to read translation file")
	ErrFailedToReadDir  = errors.New("failed to read translation directory")
	ErrNoTranslations   = errors.New("no translations loaded")
	ErrInvalidLanguage  = errors.New("invalid language code")
)
