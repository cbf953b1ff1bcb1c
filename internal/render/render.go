// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes snippets and bookmarks to a terminal, either as
// plain text or syntax-highlighted with chroma.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/pdiddy/capture/pkg/types"
)

// lexerNames maps each language to its chroma lexer.
var lexerNames = map[types.Language]string{
	types.LanguageRust:       "rust",
	types.LanguagePython:     "python",
	types.LanguageJavascript: "javascript",
	types.LanguageTypescript: "typescript",
	types.LanguageGolang:     "go",
	types.LanguageC:          "cpp",
}

// Renderer holds the highlighting style and formatter. Build one with New
// and pass it to whatever writes output.
type Renderer struct {
	mode      types.ColorMode
	style     *chroma.Style
	formatter chroma.Formatter
}

// New builds a Renderer. Unknown theme names fall back to chroma's default
// style.
func New(cfg types.RenderConfig) (*Renderer, error) {
	mode, err := ParseColorMode(string(cfg.Color))
	if err != nil {
		return nil, err
	}
	theme := cfg.Theme
	if theme == "" {
		theme = types.DefaultTheme
	}
	return &Renderer{
		mode:      mode,
		style:     styles.Get(theme),
		formatter: formatters.TTY16m,
	}, nil
}

// ParseColorMode accepts auto (also the empty string), always or never.
func ParseColorMode(v string) (types.ColorMode, error) {
	switch types.ColorMode(strings.ToLower(strings.TrimSpace(v))) {
	case "", types.ColorAuto:
		return types.ColorAuto, nil
	case types.ColorAlways:
		return types.ColorAlways, nil
	case types.ColorNever:
		return types.ColorNever, nil
	default:
		return "", types.InvalidInputf("parsing color mode", "unknown color mode: %s", v)
	}
}

// Lines writes lines to w, highlighted for lang when color is enabled for
// w and chroma has a lexer for lang.
func (r *Renderer) Lines(w io.Writer, lines []string, lang types.Language) error {
	if len(lines) == 0 {
		return nil
	}
	text := strings.Join(lines, "\n") + "\n"

	lexer := r.lexer(lang)
	if lexer == nil || !r.colorEnabled(w) {
		_, err := io.WriteString(w, text)
		return err
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return fmt.Errorf("tokenising %s: %w", lang, err)
	}
	if err := r.formatter.Format(w, r.style, iterator); err != nil {
		return fmt.Errorf("formatting %s: %w", lang, err)
	}
	return nil
}

// Bookmark writes the "Bookmark: name - id" header and, when withContent
// is set, the content followed by a blank line.
func (r *Renderer) Bookmark(w io.Writer, b types.Bookmark, withContent bool) error {
	if _, err := fmt.Fprintf(w, "Bookmark: %s - %s\n", b.Name, b.ID); err != nil {
		return err
	}
	if !withContent {
		return nil
	}
	if err := r.Lines(w, b.Content, b.Language); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Table writes one aligned line per bookmark: name, language, id.
func (r *Renderer) Table(w io.Writer, bookmarks []types.Bookmark) error {
	nameWidth := 0
	for _, b := range bookmarks {
		if n := runewidth.StringWidth(b.Name); n > nameWidth {
			nameWidth = n
		}
	}

	for _, b := range bookmarks {
		lang := b.Language.Extension()
		if lang == "" {
			lang = "-"
		}
		if _, err := fmt.Fprintf(w, "%s  %-3s  %s\n", runewidth.FillRight(b.Name, nameWidth), lang, b.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) lexer(lang types.Language) chroma.Lexer {
	name, ok := lexerNames[lang]
	if !ok {
		return nil
	}
	lexer := lexers.Get(name)
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}

func (r *Renderer) colorEnabled(w io.Writer) bool {
	switch r.mode {
	case types.ColorAlways:
		return true
	case types.ColorNever:
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
