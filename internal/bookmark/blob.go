// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bookmark

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/capture/pkg/types"
)

// writeBlob stores lines for id as newline-terminated text. The blob is
// written to a temporary file and renamed into place, so a reader never
// sees partial content. It reports false when the blob already existed.
func (s *Store) writeBlob(id string, lines []string) (bool, error) {
	path := s.blobPath(id)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	tmp, err := os.CreateTemp(s.dir, ".blob-*")
	if err != nil {
		return false, types.IOError("writing content", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return false, types.IOError("writing content", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return false, types.IOError("writing content", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return false, types.IOError("writing content", err)
	}
	return true, nil
}

// readBlob loads the lines stored for id.
func (s *Store) readBlob(id string) ([]string, error) {
	f, err := os.Open(s.blobPath(id))
	if err != nil {
		return nil, types.IOError("reading content", fmt.Errorf("blob for %s: %w", id, err))
	}
	defer f.Close()

	lines := []string{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, types.IOError("reading content", fmt.Errorf("blob for %s: %w", id, err))
	}
	return lines, nil
}
