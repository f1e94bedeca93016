package engine

// ContextWindow returns the lines within radius of the anchor index,
// clamped independently at both ends. The returned slice is a copy; it
// never aliases the input.
func ContextWindow(lines []string, anchor, radius int) []string {
	if len(lines) == 0 || anchor < 0 || anchor >= len(lines) {
		return nil
	}

	start := anchor - radius
	if start < 0 {
		start = 0
	}
	end := anchor + radius
	if end > len(lines)-1 {
		end = len(lines) - 1
	}

	window := make([]string, end-start+1)
	copy(window, lines[start:end+1])
	return window
}
