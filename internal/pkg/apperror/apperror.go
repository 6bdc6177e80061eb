package apperror

import "errors"

// Kind classifies a domain failure independently of its message.
type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindInvalidState Kind = "INVALID_STATE"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindForbidden    Kind = "FORBIDDEN"
)

// Kind sentinels. errors.Is(err, ErrConflict) is true for every error built
// with New(KindConflict, ...).
var (
	ErrNotFound     = &Error{kind: KindNotFound, msg: "not found"}
	ErrConflict     = &Error{kind: KindConflict, msg: "conflict"}
	ErrInvalidState = &Error{kind: KindInvalidState, msg: "invalid state"}
	ErrUnauthorized = &Error{kind: KindUnauthorized, msg: "unauthorized"}
	ErrForbidden    = &Error{kind: KindForbidden, msg: "forbidden"}
)

var kindSentinels = map[Kind]*Error{
	KindNotFound:     ErrNotFound,
	KindConflict:     ErrConflict,
	KindInvalidState: ErrInvalidState,
	KindUnauthorized: ErrUnauthorized,
	KindForbidden:    ErrForbidden,
}

type Error struct {
	kind Kind
	msg  string
}

// New returns a sentinel error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Kind() Kind {
	return e.kind
}

// Is matches the kind sentinel of e. Identity with other sentinels is handled
// by errors.Is itself.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return kindSentinels[e.kind] == t
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return "", false
}
