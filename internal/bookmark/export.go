// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bookmark

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gobwas/glob"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/capture/pkg/types"
)

// ExportFormat selects the serialization written by Export.
type ExportFormat string

const (
	FormatYAML ExportFormat = "yaml"
	FormatJSON ExportFormat = "json"
)

// ParseExportFormat accepts "yaml" (also the empty string) or "json".
func ParseExportFormat(v string) (ExportFormat, error) {
	switch v {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", types.InvalidInputf("parsing export format", "unsupported format %q: use yaml or json", v)
	}
}

// Export writes the bookmarks matching filter to w.
func (s *Store) Export(ctx context.Context, w io.Writer, format ExportFormat, filter string) error {
	bookmarks, err := s.List(ctx, filter)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(bookmarks); err != nil {
			return types.IOError("exporting bookmarks", fmt.Errorf("encoding JSON: %w", err))
		}
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(bookmarks); err != nil {
			return types.IOError("exporting bookmarks", fmt.Errorf("encoding YAML: %w", err))
		}
		if err := enc.Close(); err != nil {
			return types.IOError("exporting bookmarks", fmt.Errorf("encoding YAML: %w", err))
		}
	default:
		return types.InvalidInputf("exporting bookmarks", "unsupported format %q", format)
	}
	return nil
}

// compileFilter turns a glob over bookmark names into a predicate. An
// empty filter matches everything.
func compileFilter(filter string) (func(string) bool, error) {
	if filter == "" {
		return func(string) bool { return true }, nil
	}
	g, err := glob.Compile(filter)
	if err != nil {
		return nil, types.InvalidInputf("compiling filter", "bad glob %q: %v", filter, err)
	}
	return g.Match, nil
}
