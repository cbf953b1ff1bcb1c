// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import "strings"

// CommentKind classifies a single line against a Rule's comment markers.
type CommentKind int

const (
	CommentNone CommentKind = iota
	CommentSingleLine
	CommentMultiLineStart
	CommentMultiLineEnd
	CommentMultiLineComplete
)

func (k CommentKind) String() string {
	switch k {
	case CommentSingleLine:
		return "single-line"
	case CommentMultiLineStart:
		return "multi-line start"
	case CommentMultiLineEnd:
		return "multi-line end"
	case CommentMultiLineComplete:
		return "multi-line complete"
	default:
		return "none"
	}
}

// Classify inspects line with surrounding whitespace trimmed. The first
// matching case wins: single-line marker prefix, then open prefix with
// close suffix, then open prefix, then close suffix.
//
// With identical open and close markers (Python's `"""`) a line holding a
// single marker is reported as complete.
func (r Rule) Classify(line string) CommentKind {
	trimmed := strings.TrimSpace(line)

	opens := hasMarkerPrefix(trimmed, r.MultiLineOpen)
	closes := hasMarkerSuffix(trimmed, r.MultiLineClose)

	switch {
	case hasMarkerPrefix(trimmed, r.SingleLine):
		return CommentSingleLine
	case opens && closes:
		return CommentMultiLineComplete
	case opens:
		return CommentMultiLineStart
	case closes:
		return CommentMultiLineEnd
	default:
		return CommentNone
	}
}

// Empty markers never match.
func hasMarkerPrefix(s, marker string) bool {
	return marker != "" && strings.HasPrefix(s, marker)
}

func hasMarkerSuffix(s, marker string) bool {
	return marker != "" && strings.HasSuffix(s, marker)
}
