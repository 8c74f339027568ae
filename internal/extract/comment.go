package extract

import "strings"

// leadingMarks are stripped from the front of a comment, in any mixture.
const leadingMarks = "-="

// CleanComment trims a raw comment, drops a leading run of '-' and '=' and
// trims again. An empty result becomes Null.
func CleanComment(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeft(s, leadingMarks)
	s = strings.TrimSpace(s)
	if s == "" {
		return Null
	}
	return s
}
