package pattern

import "errors"

var (
	// ErrFileNotFound indicates the pattern file does not exist.
	ErrFileNotFound = errors.New("pattern: file not found")

	// ErrUnsupportedFormat indicates an unknown or unusable format tag.
	ErrUnsupportedFormat = errors.New("pattern: unsupported format")

	// ErrMalformedContent indicates the input decodes to an empty or invalid grid.
	ErrMalformedContent = errors.New("pattern: malformed content")
)
