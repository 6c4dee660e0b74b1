package codegen

import (
	"errors"
	"fmt"
	"go/token"
)

var (
	// ErrUnsupported marks shapes the generator cannot derive a merge for.
	ErrUnsupported = errors.New("unsupported shape")
	// ErrNoCapability marks field or payload types that cannot be merged.
	ErrNoCapability = errors.New("no merge capability")
	// ErrDirective marks malformed //merge: directives and tags.
	ErrDirective = errors.New("bad directive")
)

// Error is a generation-time diagnostic naming the offending type and, when
// known, the field or variant.
type Error struct {
	Pos    token.Position
	Type   string
	Member string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	where := "type " + e.Type
	if e.Member != "" {
		where += " " + e.Member
	}
	msg := fmt.Sprintf("%s: %v", where, e.Err)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(pos token.Position, typ, member string, err error, format string, args ...any) *Error {
	return &Error{
		Pos:    pos,
		Type:   typ,
		Member: member,
		Reason: fmt.Sprintf(format, args...),
		Err:    err,
	}
}
