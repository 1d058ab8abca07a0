// Package errors provides sentinel errors and structured error types for
// the chess engine. All failures are recoverable: malformed input or an
// illegal move is reported to the caller and never corrupts in-progress
// state. Use errors.Is() and errors.As() to inspect them.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that is not in the legal move set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrIllegalSAN indicates a SAN token that matches no legal move.
	ErrIllegalSAN = errors.New("illegal SAN")

	// ErrAmbiguousSAN indicates a SAN token that matches more than one
	// legal move.
	ErrAmbiguousSAN = errors.New("ambiguous SAN")

	// ErrParseFailure indicates a general PGN parsing error.
	ErrParseFailure = errors.New("parse failure")

	// ErrGameOver indicates an action on a game already in a terminal state.
	ErrGameOver = errors.New("game is over")

	// ErrDrawNotAvailable indicates a draw claim with no valid grounds.
	ErrDrawNotAvailable = errors.New("no draw to claim")
)

// FENError reports a malformed FEN string, naming the field at fault.
// It unwraps to ErrInvalidFEN.
type FENError struct {
	Field  string // which of the six FEN fields was malformed
	Detail string
}

// Error returns a message naming the field and the problem.
func (e FENError) Error() string {
	return fmt.Sprintf("fen: %s: %s: %v", e.Field, e.Detail, ErrInvalidFEN)
}

// Unwrap returns ErrInvalidFEN.
func (e FENError) Unwrap() error {
	return ErrInvalidFEN
}

// ParseError represents a PGN parsing error with location context.
type ParseError struct {
	Err      error  // The underlying error
	Line     int    // Line number (1-based)
	Column   int    // Column number (1-based)
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Line > 0 {
		loc := fmt.Sprintf("line %d", e.Line)
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrParseFailure
}

// GameError wraps errors with game context: the ply at which the error
// occurred and the move text that caused it.
type GameError struct {
	Err      error
	PlyNum   int    // 1-based ply number (0 if not applicable)
	MoveText string // the move text that caused the error, if any
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string
	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}
	context := strings.Join(parts, ", ")
	if e.Err != nil {
		if context != "" {
			return fmt.Sprintf("%s: %v", context, e.Err)
		}
		return e.Err.Error()
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the GameError wrapper.
func (e *GameError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
