// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/capture/internal/capture"
	"github.com/pdiddy/capture/pkg/types"
)

// Extraction modes accepted after the command's own arguments.
const (
	modeFunction = "function"
	modeInterval = "interval"
)

// extractionFlags registers the flags shared by add and snippet.
func extractionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "source file to extract from")
	cmd.Flags().Bool("no-comments", false, "strip comment lines from the result")
	cmd.MarkFlagRequired("file")
}

// extract runs one capture session for mode and target against the
// --file flag and returns the finished session.
func extract(cmd *cobra.Command, cfg types.Config, mode, target string) (*capture.Session, error) {
	path, _ := cmd.Flags().GetString("file")
	noComments, _ := cmd.Flags().GetBool("no-comments")

	var opts []capture.Option
	if !cfg.Capture.AllowUnknown {
		opts = append(opts, capture.RequireKnownLanguage())
	}
	session, err := capture.New(path, opts...)
	if err != nil {
		return nil, err
	}

	switch mode {
	case modeFunction:
		_, err = session.FromFunction(target, !noComments)
	case modeInterval:
		start, end, perr := parseInterval(target)
		if perr != nil {
			return nil, perr
		}
		_, err = session.FromInterval(start, end, !noComments)
	default:
		return nil, types.InvalidInputf("parsing arguments", "unknown mode %q: use %s or %s", mode, modeFunction, modeInterval)
	}
	if err != nil {
		return nil, err
	}

	logger.WithField("file", path).WithField("lang", session.Language()).
		Debugf("extracted %d lines", len(session.Result()))
	return session, nil
}

// parseInterval parses "start:end" into two positive line numbers. Ordering
// is checked by the capture session.
func parseInterval(v string) (start, end int, err error) {
	const op = "parsing interval"

	lo, hi, ok := strings.Cut(v, ":")
	if !ok {
		return 0, 0, types.InvalidInputf(op, "interval %q must be start:end", v)
	}
	start, err = strconv.Atoi(strings.TrimSpace(lo))
	if err != nil || start < 1 {
		return 0, 0, types.InvalidInputf(op, "interval %q: start must be a positive integer", v)
	}
	end, err = strconv.Atoi(strings.TrimSpace(hi))
	if err != nil || end < 1 {
		return 0, 0, types.InvalidInputf(op, "interval %q: end must be a positive integer", v)
	}
	return start, end, nil
}
