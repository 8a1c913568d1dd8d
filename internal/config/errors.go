package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoInput is returned when no input file is given.
	ErrNoInput = errors.New("no input specified: provide at least one crawler output file")

	// ErrNoFileKind is returned when the kind of the input files is not set.
	ErrNoFileKind = errors.New("no file kind specified: use --type crawled or --type links")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrOutputWithMultipleInputs is returned when --output is combined with
	// more than one input. Use --output-dir instead.
	ErrOutputWithMultipleInputs = errors.New("--output accepts a single input: use --output-dir for several files")

	// ErrInvalidFiller is returned when the filler text would break the CSV
	// layout.
	ErrInvalidFiller = errors.New("invalid filler: must not contain commas or line breaks")

	// ErrDuplicateOutput is returned when two inputs would be written to the
	// same output file.
	ErrDuplicateOutput = errors.New("duplicate output file")
)
