package model

import "time"

// Conversion summarizes one conversion of a crawler output file.
// It is filled in step by step by the pipeline and saved to the history
// database once the output has been written.
type Conversion struct {
	// ID is the history database identifier. Zero until saved.
	ID int64 `json:"id,omitempty"`

	// InputPath is the path of the converted crawler output.
	InputPath string `json:"input_path"`

	// InputHash is the BLAKE2b-256 fingerprint of the raw input bytes,
	// hex encoded. It lets the history show repeated conversions of the
	// same file.
	InputHash string `json:"input_hash,omitempty"`

	// Kind is the kind of crawler output.
	Kind FileKind `json:"-"`

	// KindName is the string form of Kind, kept for JSON and storage.
	KindName string `json:"kind"`

	// Format is the output format.
	Format Format `json:"-"`

	// FormatName is the string form of Format, kept for JSON and storage.
	FormatName string `json:"format"`

	// OutputPath is where the result was written. "-" means standard output.
	OutputPath string `json:"output_path"`

	// LinesRead is the number of lines read from the input.
	LinesRead int `json:"lines_read"`

	// BlanksRemoved is the number of blank lines dropped before conversion.
	BlanksRemoved int `json:"blanks_removed"`

	// Rows is the number of table rows written (crawl table or unique links).
	Rows int `json:"rows"`

	// Columns is the width of the padded crawl table. Zero for link lists.
	Columns int `json:"columns"`

	// Tiers is the number of tier markers processed.
	Tiers int `json:"tiers"`

	// UnmatchedTiers is the number of tier markers whose referenced URL was
	// not found in the table and whose rows were appended at the end.
	UnmatchedTiers int `json:"unmatched_tiers"`

	// BytesWritten is the size of the emitted output.
	BytesWritten int `json:"bytes_written"`

	// StartedAt is when the conversion started.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the conversion took.
	Duration time.Duration `json:"duration"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error is the error that aborted the conversion, if any.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error, kept for JSON and storage.
	ErrorMessage string `json:"error,omitempty"`
}

// NewConversion creates a Conversion for the given input.
func NewConversion(inputPath string, kind FileKind, format Format) *Conversion {
	return &Conversion{
		InputPath:  inputPath,
		Kind:       kind,
		KindName:   kind.String(),
		Format:     format,
		FormatName: format.String(),
		StartedAt:  time.Now(),
	}
}

// Succeeded reports whether the conversion finished without error.
func (c *Conversion) Succeeded() bool {
	return c.Error == nil && c.ErrorMessage == ""
}

// Fail records err as the reason the conversion was aborted.
func (c *Conversion) Fail(err error) {
	c.Error = err
	if err != nil {
		c.ErrorMessage = err.Error()
	}
}
