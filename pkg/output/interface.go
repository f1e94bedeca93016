package output

import (
	"context"
	"io"
)

// Formatter renders a scan result in a specific format.
type Formatter interface {
	// Format renders the result to the given writer.
	Format(ctx context.Context, result *ScanResult, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose enables detailed output including match context.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool

	// Color enables severity colorization in text output.
	Color bool
}
