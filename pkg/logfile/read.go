package logfile

import (
	"fmt"
	"os"
)

// MaxFileSize caps how much log text is read into memory for one scan.
const MaxFileSize = 256 << 20 // 256 MiB

// Read loads an entire log file into memory. The engine operates on full
// text, so the file size is bounded up front.
func Read(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("log file %s is too large (%d bytes, limit %d)", path, info.Size(), int64(MaxFileSize))
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided log paths are expected
	if err != nil {
		return "", fmt.Errorf("reading log file: %w", err)
	}

	return string(data), nil
}
