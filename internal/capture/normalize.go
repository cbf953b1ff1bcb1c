// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package capture

import (
	"strings"

	"github.com/pdiddy/capture/internal/rules"
)

// normalize returns lines[start-1:end] with comment lines removed (unless
// includeComments is set) and the common leading indentation stripped.
// The caller guarantees 1 <= start <= end <= len(lines).
func normalize(lines []string, start, end int, rule rules.Rule, includeComments bool) []string {
	var kept []string
	depth := 0

	for _, line := range lines[start-1 : end] {
		if !includeComments {
			switch rule.Classify(line) {
			case rules.CommentSingleLine, rules.CommentMultiLineComplete:
				continue
			case rules.CommentMultiLineStart:
				depth++
				continue
			case rules.CommentMultiLineEnd:
				if depth > 0 {
					depth--
				}
				continue
			}
			if depth > 0 {
				continue
			}
		}
		kept = append(kept, line)
	}

	indent := minIndent(kept)
	out := make([]string, len(kept))
	for i, line := range kept {
		out[i] = trimIndent(line, indent)
	}
	return out
}

// minIndent is the smallest leading-space count over the non-blank lines.
// Blank and whitespace-only lines do not constrain it.
func minIndent(lines []string) int {
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if n := leadingSpaces(line); indent < 0 || n < indent {
			indent = n
		}
	}
	if indent < 0 {
		return 0
	}
	return indent
}

func leadingSpaces(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// trimIndent removes at most budget leading spaces from line.
func trimIndent(line string, budget int) string {
	n := leadingSpaces(line)
	if n > budget {
		n = budget
	}
	return line[n:]
}
