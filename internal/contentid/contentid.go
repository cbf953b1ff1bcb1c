// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package contentid derives the deterministic identifier of a snippet from
// its lines.
package contentid

import (
	"crypto/sha256"
	"encoding/hex"
)

// Of folds lines into one identifier. The last two elements are replaced
// by the SHA-256 hex digest of "last secondToLast" until one element is
// left. The fold is right-associative and unbalanced; changing the order
// changes every stored id. An empty input yields "" and a single line is
// its own id.
func Of(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	work := make([]string, len(lines))
	copy(work, lines)

	for len(work) > 1 {
		n := len(work)
		sum := sha256.Sum256([]byte(work[n-1] + " " + work[n-2]))
		work = append(work[:n-2], hex.EncodeToString(sum[:]))
	}

	return work[0]
}

// IsDigest reports whether id has the shape of a folded digest (64
// lowercase hex characters) rather than a single raw line.
func IsDigest(id string) bool {
	if len(id) != sha256.Size*2 {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
