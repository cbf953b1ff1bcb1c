// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package capture

import "github.com/pdiddy/capture/internal/rules"

// locate finds the 1-based inclusive interval of the function named name.
//
// A declaration line whose captured name equals name becomes the start,
// replacing any earlier one. From the start line on, every block-open
// delimiter increments a balance and every block-close decrements it; the
// line on which the balance returns to zero, after at least one open, is
// the end. Delimiters above the start line are never counted, and neither
// are closes that precede the first open.
func locate(lines []string, name string, rule rules.Rule) (start, end int, ok bool) {
	balance := 0
	opened := false

	for i, line := range lines {
		if rule.DeclaresFunction(line, name) {
			start = i + 1
		}
		if start == 0 {
			continue
		}

		for _, r := range line {
			switch r {
			case rule.BlockOpen:
				balance++
				opened = true
			case rule.BlockClose:
				if !opened {
					continue
				}
				balance--
			default:
				continue
			}
			if opened && balance == 0 {
				return start, i + 1, true
			}
		}
	}

	return 0, 0, false
}
