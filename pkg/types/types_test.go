// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want Language
	}{
		{"rs", LanguageRust},
		{"py", LanguagePython},
		{"js", LanguageJavascript},
		{"ts", LanguageTypescript},
		{"go", LanguageGolang},
		{"c", LanguageC},
		{"cpp", LanguageC},
		{"cc", LanguageC},
		{"RS", LanguageUnknown},
		{".rs", LanguageUnknown},
		{"txt", LanguageUnknown},
		{"", LanguageUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, LanguageFromExtension(tt.ext))
		})
	}
}

func TestLanguageFromPath(t *testing.T) {
	assert.Equal(t, LanguageJavascript, LanguageFromPath("multiple.py.js"))
	assert.Equal(t, LanguageRust, LanguageFromPath("src/lib.rs"))
	assert.Equal(t, LanguageUnknown, LanguageFromPath("Makefile"))
}

func TestLanguageTextRoundTrip(t *testing.T) {
	for _, lang := range []Language{LanguageRust, LanguagePython, LanguageJavascript, LanguageTypescript, LanguageGolang, LanguageC, LanguageUnknown} {
		text, err := lang.MarshalText()
		require.NoError(t, err)

		var got Language
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, lang, got, "round trip of %s", lang)
	}

	text, _ := LanguageC.MarshalText()
	assert.Equal(t, "cpp", string(text))
}

func TestErrorMatchesSentinelByKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewError(KindNotFound, "getting bookmark", "adder", nil))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "outer: getting bookmark: not found: adder", err.Error())
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := IOError("writing content", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrIO)
	assert.Equal(t, "writing content: i/o error: disk full", err.Error())
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestConfigWithDefaults(t *testing.T) {
	got := Config{}.WithDefaults()
	assert.Equal(t, DefaultStoreDir, got.Store.Dir)
	assert.Equal(t, DefaultTheme, got.Render.Theme)
	assert.Equal(t, ColorAuto, got.Render.Color)
	assert.False(t, got.Capture.AllowUnknown)

	custom := Config{Store: StoreConfig{Dir: "x"}, Render: RenderConfig{Theme: "dracula", Color: ColorNever}}.WithDefaults()
	assert.Equal(t, "x", custom.Store.Dir)
	assert.Equal(t, "dracula", custom.Render.Theme)
	assert.Equal(t, ColorNever, custom.Render.Color)
}
