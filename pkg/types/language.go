// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"strings"
)

// Language identifies a source language from a file extension.
type Language int

const (
	LanguageUnknown Language = iota
	LanguageRust
	LanguagePython
	LanguageJavascript
	LanguageTypescript
	LanguageGolang
	LanguageC
)

// extensionLanguages maps a bare extension (no leading dot) to its language.
var extensionLanguages = map[string]Language{
	"rs":  LanguageRust,
	"py":  LanguagePython,
	"js":  LanguageJavascript,
	"ts":  LanguageTypescript,
	"go":  LanguageGolang,
	"c":   LanguageC,
	"cpp": LanguageC,
	"cc":  LanguageC,
}

// LanguageFromExtension resolves a bare extension such as "rs" by exact
// match. Unrecognized extensions yield LanguageUnknown.
func LanguageFromExtension(ext string) Language {
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return LanguageUnknown
}

// LanguageFromPath resolves the language of path from its final extension,
// so "multiple.py.js" is Javascript.
func LanguageFromPath(path string) Language {
	return LanguageFromExtension(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Extension returns the canonical extension persisted for the language.
// C and C++ share "cpp". Unknown has no extension.
func (l Language) Extension() string {
	switch l {
	case LanguageRust:
		return "rs"
	case LanguagePython:
		return "py"
	case LanguageJavascript:
		return "js"
	case LanguageTypescript:
		return "ts"
	case LanguageGolang:
		return "go"
	case LanguageC:
		return "cpp"
	default:
		return ""
	}
}

func (l Language) String() string {
	switch l {
	case LanguageRust:
		return "rust"
	case LanguagePython:
		return "python"
	case LanguageJavascript:
		return "javascript"
	case LanguageTypescript:
		return "typescript"
	case LanguageGolang:
		return "go"
	case LanguageC:
		return "c"
	default:
		return "unknown"
	}
}

// MarshalText encodes the language as its canonical extension so exports
// and the index agree on one representation.
func (l Language) MarshalText() ([]byte, error) {
	return []byte(l.Extension()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (l *Language) UnmarshalText(text []byte) error {
	*l = LanguageFromExtension(string(text))
	return nil
}
