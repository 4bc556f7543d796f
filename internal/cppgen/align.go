package cppgen

import "strings"

// line is one emitted output line. A non-empty note is an offset
// annotation that render formats into a trailing comment; plain lines
// keep their text untouched.
type line struct {
	text string
	note string
}

// render flattens the line buffer into the final text. Annotations are
// right-aligned one column past the longest annotated line so every
// trailing comment starts in the same column.
func render(lines []line) string {
	if len(lines) == 0 {
		return ""
	}

	width := 0
	for _, l := range lines {
		if l.note != "" && len(l.text) > width {
			width = len(l.text)
		}
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.text)
		if l.note != "" {
			for pad := width + 1 - len(l.text); pad > 0; pad-- {
				b.WriteByte(' ')
			}
			b.WriteString("// ")
			b.WriteString(l.note)
		}
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
