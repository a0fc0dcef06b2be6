package vpath

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is wrapped by every error returned from [Parse].
	ErrSyntax = errors.New("invalid path syntax")
	// ErrNoCurrentPoint is recorded by a [Builder] when a drawing call
	// needs a current point and there is none.
	ErrNoCurrentPoint = errors.New("no current point")
)

// ParseError describes where and why parsing a path failed.
type ParseError struct {
	// Offset is the byte offset into the input at which the error was
	// detected.
	Offset int
	Msg    string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("vpath: %s at offset %d", err.Msg, err.Offset)
}

func (err *ParseError) Unwrap() error {
	return ErrSyntax
}
