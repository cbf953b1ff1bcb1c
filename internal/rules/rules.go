// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rules holds the per-language line patterns used to recognize
// function declarations and comments. A Rule is a read-only value built
// once per extraction session.
package rules

import (
	"path/filepath"
	"regexp"

	"github.com/pdiddy/capture/pkg/types"
)

// Function declaration patterns. Each has exactly one capture group, the
// declared name, and spans the whole line.
const (
	rustFunction = `^\s*(?:pub(?:\([^)]*\))?\s+)?(?:default\s+)?(?:const\s+)?(?:async\s+)?(?:unsafe\s+)?(?:extern\s+"[^"]*"\s+)?fn\s+([A-Za-z_][A-Za-z0-9_]*)\s*(?:<.*>)?\s*\(.*$`

	pythonFunction = `^\s*(?:async\s+)?def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(.*\)\s*(?:->\s*[^:]+)?:\s*(?:#.*)?$`

	// Covers `function name(...)` declarations and `const|let|var name =`
	// bindings to a function expression or an arrow function.
	scriptFunction = `^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?(?:function\s*\*?\s*|(?:const|let|var)\s+)([A-Za-z_$][A-Za-z0-9_$]*)(?:\s*(?:<.*>)?\s*\(.*\).*|\s*(?::[^=]+)?=\s*(?:async\s+)?(?:function\s*\*?\s*(?:[A-Za-z_$][A-Za-z0-9_$]*)?\s*\(.*\).*|\(.*\)\s*(?::\s*[^=]+)?=>.*|[A-Za-z_$][A-Za-z0-9_$]*\s*=>.*))\s*$`

	goFunction = `^\s*func\s+(?:\([^)]*\)\s*)?([A-Za-z_][A-Za-z0-9_]*)\s*(?:\[.*\])?\s*\(.*$`

	// A return type (possibly qualified, templated or pointer) followed by
	// the name and an opening parenthesis. Lines containing ';' are calls
	// or prototypes, not definitions.
	cFunction = `^\s*[A-Za-z_][A-Za-z0-9_:<>,\s\*&]*?[\s\*&]+(?:[A-Za-z_][A-Za-z0-9_]*::)*([A-Za-z_~][A-Za-z0-9_]*)\s*\([^;]*$`

	// Unknown languages match every line; the captured name is the line.
	anyLine = `^(.*)$`
)

// Rule bundles the pattern and marker data needed to locate functions and
// comments in one language.
type Rule struct {
	Language types.Language

	// Function matches a function declaration line; group 1 is the name.
	Function *regexp.Regexp

	// SingleLine starts a comment that runs to the end of the line.
	SingleLine string

	// MultiLineOpen and MultiLineClose delimit block comments.
	MultiLineOpen  string
	MultiLineClose string

	// BlockOpen and BlockClose delimit function bodies. They are braces for
	// every language, Python included.
	BlockOpen  rune
	BlockClose rune
}

// New builds the Rule for path from its extension. A path without any
// extension is a configuration error; an unrecognized extension yields the
// permissive Unknown rule.
func New(path string) (Rule, error) {
	if filepath.Ext(path) == "" {
		return Rule{}, types.NewError(types.KindConfiguration, "resolving rule", path, nil)
	}
	return ForLanguage(types.LanguageFromPath(path)), nil
}

// ForLanguage assembles the Rule for lang. Patterns are compiled per call.
func ForLanguage(lang types.Language) Rule {
	r := Rule{
		Language:   lang,
		BlockOpen:  '{',
		BlockClose: '}',
	}

	switch lang {
	case types.LanguageRust:
		r.Function = regexp.MustCompile(rustFunction)
		r.setCStyleComments()
	case types.LanguagePython:
		r.Function = regexp.MustCompile(pythonFunction)
		r.SingleLine = "#"
		r.MultiLineOpen = `"""`
		r.MultiLineClose = `"""`
	case types.LanguageJavascript, types.LanguageTypescript:
		r.Function = regexp.MustCompile(scriptFunction)
		r.setCStyleComments()
	case types.LanguageGolang:
		r.Function = regexp.MustCompile(goFunction)
		r.setCStyleComments()
	case types.LanguageC:
		r.Function = regexp.MustCompile(cFunction)
		r.setCStyleComments()
	default:
		r.Function = regexp.MustCompile(anyLine)
	}

	return r
}

func (r *Rule) setCStyleComments() {
	r.SingleLine = "//"
	r.MultiLineOpen = "/*"
	r.MultiLineClose = "*/"
}

// DeclaresFunction reports whether line declares a function named name.
// The captured name must equal name exactly.
func (r Rule) DeclaresFunction(line, name string) bool {
	m := r.Function.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	return m[1] == name
}
