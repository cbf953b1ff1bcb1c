// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package capture extracts a cleaned-up excerpt of source code from a file,
// either the body of a named function or an explicit line interval.
//
// A Session is single-shot: it reads its file once per extraction and
// holds at most one result. Sessions share no state and are not safe for
// concurrent use.
package capture

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/capture/internal/contentid"
	"github.com/pdiddy/capture/internal/rules"
	"github.com/pdiddy/capture/pkg/types"
)

// maxLineSize bounds a single source line read by the scanner.
const maxLineSize = 1024 * 1024

// Option configures a Session.
type Option func(*Session)

// RequireKnownLanguage makes New reject files whose extension has no
// language rule.
func RequireKnownLanguage() Option {
	return func(s *Session) { s.requireKnown = true }
}

// Session is one extraction against one file.
type Session struct {
	path         string
	rule         rules.Rule
	requireKnown bool

	produced bool
	result   []string
}

// New resolves the language rule for path. It does not touch the file.
func New(path string, opts ...Option) (*Session, error) {
	s := &Session{path: path}
	for _, opt := range opts {
		opt(s)
	}

	rule, err := rules.New(path)
	if err != nil {
		return nil, err
	}
	if s.requireKnown && rule.Language == types.LanguageUnknown {
		return nil, types.NewError(types.KindConfiguration, "resolving rule",
			fmt.Sprintf("unrecognized file extension: %s", path), nil)
	}
	s.rule = rule

	return s, nil
}

// Path returns the source file path.
func (s *Session) Path() string { return s.path }

// Language returns the language resolved from the path.
func (s *Session) Language() types.Language { return s.rule.Language }

// Produced reports whether the session already holds a result.
func (s *Session) Produced() bool { return s.produced }

// Result returns a copy of the extracted lines, or nil before extraction.
func (s *Session) Result() []string {
	if !s.produced {
		return nil
	}
	out := make([]string, len(s.result))
	copy(out, s.result)
	return out
}

// ID returns the content identifier of the result.
func (s *Session) ID() string {
	return contentid.Of(s.result)
}

// FromFunction extracts the body of the function named name. It fails with
// KindNotFound when no declaration matches or its body never closes.
func (s *Session) FromFunction(name string, includeComments bool) ([]string, error) {
	const op = "capturing function"

	if err := s.checkFresh(op); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, types.InvalidInputf(op, "empty function name")
	}

	lines, err := readLines(s.path)
	if err != nil {
		return nil, err
	}

	start, end, ok := locate(lines, name, s.rule)
	if !ok {
		return nil, types.NewError(types.KindNotFound, op,
			fmt.Sprintf("function %q in %s", name, s.path), nil)
	}

	return s.finish(normalize(lines, start, end, s.rule, includeComments)), nil
}

// FromInterval extracts lines start through end, 1-based and inclusive.
// The bounds are validated before the file is read.
func (s *Session) FromInterval(start, end int, includeComments bool) ([]string, error) {
	const op = "capturing interval"

	if err := s.checkFresh(op); err != nil {
		return nil, err
	}
	if start < 1 {
		return nil, types.InvalidInputf(op, "start line %d must be at least 1", start)
	}
	if end < start {
		return nil, types.InvalidInputf(op, "end line %d is before start line %d", end, start)
	}

	lines, err := readLines(s.path)
	if err != nil {
		return nil, err
	}
	if end > len(lines) {
		return nil, types.InvalidInputf(op, "interval %d:%d exceeds %s (%d lines)", start, end, s.path, len(lines))
	}

	return s.finish(normalize(lines, start, end, s.rule, includeComments)), nil
}

func (s *Session) checkFresh(op string) error {
	if s.produced {
		return types.NewError(types.KindAlreadyProduced, op, s.path, nil)
	}
	return nil
}

func (s *Session) finish(lines []string) []string {
	s.result = lines
	s.produced = true
	return s.Result()
}

// readLines reads path once, line by line, dropping line terminators.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.IOError("reading "+path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, types.IOError("reading "+path, err)
	}
	return lines, nil
}
