package engine

import "strings"

// MayMatch reports whether the keyword prefilter permits pattern evaluation
// for the candidate text. An empty keyword set always permits evaluation;
// otherwise at least one keyword must appear as a case-sensitive substring.
//
// This is a necessary-condition screen only: it prunes candidates that
// cannot match, it never confirms a match.
func MayMatch(candidate string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	for _, kw := range keywords {
		if strings.Contains(candidate, kw) {
			return true
		}
	}
	return false
}
