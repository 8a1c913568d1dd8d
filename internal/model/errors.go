package model

import "errors"

// Conversion errors.
// These are wrapped with context by the packages that detect them, so
// callers should match them with errors.Is.
var (
	// ErrInputUnreadable is returned when an input file cannot be opened or read.
	// The CLI maps this error to exit status 2.
	ErrInputUnreadable = errors.New("input file unreadable")

	// ErrOutputUnwritable is returned when the output destination cannot be
	// created or written.
	ErrOutputUnwritable = errors.New("output file unwritable")

	// ErrUnknownFileKind is returned when a file kind name or menu choice
	// does not match any known kind.
	ErrUnknownFileKind = errors.New("unknown file kind")

	// ErrUnknownFormat is returned when an output format name is not supported.
	ErrUnknownFormat = errors.New("unknown output format")
)
