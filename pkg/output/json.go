package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter formats scan results as JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the scan result as JSON.
func (f *JSONFormatter) Format(_ context.Context, result *ScanResult, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if f.opts.Quiet {
		// Quiet mode: just the report, no grouped view
		return encoder.Encode(result.Report)
	}

	return encoder.Encode(result)
}
