// Package giterr defines the error values shared by all muninn packages.
//
// Decoding, validation and reference failures are reported as one of these
// kinds, usually wrapped with fmt.Errorf("...: %w", err) at the call site so
// the kind stays matchable with errors.As while the message keeps its context.
// There is no kind for I/O failures: a failed read of a repository file
// (other than a missing ref or object file, which is InvalidRef) returns the
// underlying os or decompression error wrapped with context, and errors from
// the bbolt cache in package store are not giterr kinds either.
package giterr

import (
	"errors"
	"fmt"
)

// MissingDirectory reports a directory required by repository validation.
type MissingDirectory struct {
	Path string
}

func (e *MissingDirectory) Error() string {
	return fmt.Sprintf("missing directory %s", e.Path)
}

// MissingFile reports a file required by repository validation.
type MissingFile struct {
	Path string
}

func (e *MissingFile) Error() string {
	return fmt.Sprintf("missing file %s", e.Path)
}

// InvalidRef reports an unresolvable or malformed reference path.
type InvalidRef struct {
	Name string
}

func (e *InvalidRef) Error() string {
	return fmt.Sprintf("invalid ref %q", e.Name)
}

// InvalidBranch reports a malformed branch name.
type InvalidBranch struct {
	Name string
}

func (e *InvalidBranch) Error() string {
	return fmt.Sprintf("invalid branch %q", e.Name)
}

// InvalidTag reports a malformed tag name.
type InvalidTag struct {
	Name string
}

func (e *InvalidTag) Error() string {
	return fmt.Sprintf("invalid tag %q", e.Name)
}

// InvalidRemote reports a malformed remote reference.
type InvalidRemote struct {
	Name string
}

func (e *InvalidRemote) Error() string {
	return fmt.Sprintf("invalid remote %q", e.Name)
}

// InvalidHashSize reports a digest constructed from the wrong number of bytes.
type InvalidHashSize struct {
	Expected int
	Actual   int
}

func (e *InvalidHashSize) Error() string {
	return fmt.Sprintf("invalid hash size: expected %d bytes, got %d", e.Expected, e.Actual)
}

// Incomplete reports a decoder that ran out of input. Needed is the number
// of additional bytes the decoder wanted, or 0 when unknown.
type Incomplete struct {
	Needed int
}

func (e *Incomplete) Error() string {
	if e.Needed > 0 {
		return fmt.Sprintf("parsing error: not enough input, need %d more bytes", e.Needed)
	}
	return "parsing error: not enough input"
}

// ParseError reports syntactically malformed input.
type ParseError struct {
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing error: %s", e.Detail)
}

// OutOfBound reports a numeric bound violation, e.g. ref chain depth.
type OutOfBound struct {
	Got int
	Max int
}

func (e *OutOfBound) Error() string {
	return fmt.Sprintf("out of bound: got %d, max %d", e.Got, e.Max)
}

// Parsef builds a ParseError with a formatted detail message.
func Parsef(format string, args ...any) error {
	return &ParseError{Detail: fmt.Sprintf(format, args...)}
}

// IsIncomplete reports whether err is (or wraps) an Incomplete error,
// so callers can distinguish "need more bytes" from "malformed".
func IsIncomplete(err error) bool {
	var inc *Incomplete
	return errors.As(err, &inc)
}
