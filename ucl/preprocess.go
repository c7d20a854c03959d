package ucl

import (
	"regexp"
	"strings"
)

// blockComment matches /* ... */ across lines, shortest match first.
var blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)

// stripComments removes block comments, then line comments outside quotes.
// Each block comment is replaced by the newlines it spanned, so line
// numbers reported by later stages refer to the original source.
func stripComments(source string) string {
	source = blockComment.ReplaceAllStringFunc(source, func(m string) string {
		return strings.Repeat("\n", strings.Count(m, "\n"))
	})

	lines := strings.Split(source, "\n")

	for i, line := range lines {
		if at, ok := lineCommentIndex(line); ok {
			lines[i] = strings.TrimRight(line[:at], " \t")
		}
	}

	return strings.Join(lines, "\n")
}

// lineCommentIndex locates the first // outside single or double quotes.
// Quote characters preceded by a backslash neither open nor close a
// string; a quote of the other kind inside a string is literal text.
func lineCommentIndex(line string) (int, bool) {
	inString := false

	var quote byte

	for i := 0; i < len(line); i++ {
		ch := line[i]

		switch {
		case (ch == '"' || ch == '\'') && (i == 0 || line[i-1] != '\\'):
			if !inString {
				inString = true
				quote = ch
			} else if ch == quote {
				inString = false
			}

		case ch == '/' && !inString && i+1 < len(line) && line[i+1] == '/':
			return i, true
		}
	}

	return 0, false
}
