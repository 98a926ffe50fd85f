package loader

import (
	"errors"
	"fmt"
)

// ErrReportNotFound is returned when the report file does not exist.
var ErrReportNotFound = errors.New("report file not found")

// ParseError describes input that exists but cannot be understood.
type ParseError struct {
	Path string
	Line int    // 1-based; 0 when not applicable
	Key  string // offending summary key, if known
	Err  error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("parse %s: line %d: %v", e.Path, e.Line, e.Err)
	case e.Key != "":
		return fmt.Sprintf("parse %s: key %q: %v", e.Path, e.Key, e.Err)
	default:
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
