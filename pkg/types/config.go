// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the capture engine,
// the bookmark store, the renderer and the CLI: language tags, bookmarks,
// configuration and the error taxonomy.
package types

// Default configuration values.
const (
	DefaultStoreDir = ".capture"
	DefaultTheme    = "monokai"
	DefaultColor    = ColorAuto
)

// ColorMode selects when the renderer emits terminal colors.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// StoreConfig holds settings for the bookmark store.
type StoreConfig struct {
	// Dir is the directory holding the index database and content blobs
	// (default ".capture").
	Dir string `json:"dir" yaml:"dir"`
}

// RenderConfig holds settings for terminal output.
type RenderConfig struct {
	// Theme is a chroma style name (default "monokai").
	Theme string `json:"theme" yaml:"theme"`

	// Color is auto, always or never. Auto colors only when the output is
	// a terminal.
	Color ColorMode `json:"color" yaml:"color"`
}

// CaptureConfig holds settings for extraction sessions.
type CaptureConfig struct {
	// AllowUnknown permits capturing from files whose extension has no
	// language rule. Such captures never match a function and never strip
	// comments.
	AllowUnknown bool `json:"allow_unknown" yaml:"allow_unknown"`
}

// Config groups every section of the capture configuration file.
type Config struct {
	Store   StoreConfig   `json:"store" yaml:"store"`
	Render  RenderConfig  `json:"render" yaml:"render"`
	Capture CaptureConfig `json:"capture" yaml:"capture"`
}

// WithDefaults returns a copy of c with empty fields filled in.
func (c Config) WithDefaults() Config {
	if c.Store.Dir == "" {
		c.Store.Dir = DefaultStoreDir
	}
	if c.Render.Theme == "" {
		c.Render.Theme = DefaultTheme
	}
	if c.Render.Color == "" {
		c.Render.Color = DefaultColor
	}
	return c
}
