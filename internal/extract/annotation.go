package extract

import (
	"regexp"
	"strings"
)

// Marker introduces an annotation inside a description. It is case-sensitive.
const Marker = "EX:"

// header matches the marker, its date token and the whitespace around the date.
// The date is a shape check only and is not validated against the calendar.
var header = regexp.MustCompile(`^EX:\s*([0-9]{4}\.[0-9]{2}\.[0-9]{2})\s*`)

// Annotation is one dated comment found in a description.
type Annotation struct {
	Date    string `json:"date"`
	Comment string `json:"comment"`
}

// ExtractAnnotations returns every annotation in a description cell, in the
// order they appear. Cells that are not text yield no annotations.
//
// A comment runs from the end of its date token up to the next Marker or the
// end of the text, so it may span lines and keep trailing whitespace. It may
// be empty. A marker that is not followed by a well-formed date is skipped,
// but it still ends the comment of the annotation before it.
func ExtractAnnotations(v any) []Annotation {
	text := descriptionText(v)

	var out []Annotation
	pos := 0
	for pos < len(text) {
		i := strings.Index(text[pos:], Marker)
		if i < 0 {
			break
		}
		start := pos + i

		m := header.FindStringSubmatchIndex(text[start:])
		if m == nil {
			pos = start + len(Marker)
			continue
		}

		bodyStart := start + m[1]
		bodyEnd := len(text)
		if j := strings.Index(text[bodyStart:], Marker); j >= 0 {
			bodyEnd = bodyStart + j
		}

		out = append(out, Annotation{
			Date:    text[start+m[2] : start+m[3]],
			Comment: text[bodyStart:bodyEnd],
		})
		pos = bodyEnd
	}
	return out
}

func descriptionText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return ""
	}
}
