// Package errs provides a small error type that carries the operation, kind and
// offending parameter along with the wrapped error, so that handlers can decide on a
// status code and log a useful operation stack.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Op describes an operation, usually as the package and method,
// such as "airtableService.CreateTaskListsTable".
type Op string

// Parameter is the name of the parameter or field that caused the error.
type Parameter string

// Kind defines the kind of error this is, mostly for use by systems
// that must act differently depending on the error.
type Kind uint8

const (
	Other           Kind = iota // Unclassified error. This value is not printed in the error message.
	Invalid                     // Invalid operation for this type of item.
	IO                          // External I/O error such as network failure.
	Exist                       // Item already exists.
	NotExist                    // Item does not exist.
	Internal                    // Internal error or inconsistency.
	Validation                  // Input validation error.
	InvalidRequest              // Invalid request.
	Unauthenticated             // Unauthenticated request.
	Unauthorized                // Unauthorized request.
	RateLimited                 // Too many requests.
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "other_error"
	case Invalid:
		return "invalid_operation"
	case IO:
		return "I/O_error"
	case Exist:
		return "item_already_exists"
	case NotExist:
		return "item_does_not_exist"
	case Internal:
		return "internal_error"
	case Validation:
		return "input_validation_error"
	case InvalidRequest:
		return "invalid_request_error"
	case Unauthenticated:
		return "unauthenticated_request"
	case Unauthorized:
		return "unauthorized_request"
	case RateLimited:
		return "rate_limited"
	}

	return "unknown_error_kind"
}

// Error is the type that implements the error interface.
type Error struct {
	Op    Op
	Kind  Kind
	Param Parameter
	Err   error
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return e.Kind.String()
}

// E builds an error value from its arguments. There must be at least one argument
// or E panics. The type of each argument determines its meaning:
//
//	errs.Op        the operation being performed
//	errs.Kind      the class of error
//	errs.Parameter the parameter or field that is at fault
//	error          the underlying error
//	string         treated as an error message
//
// If the wrapped error is an *Error with the same Kind, or the Kind is unset, the
// kind of the wrapped error is inherited.
func E(args ...any) error {
	if len(args) == 0 {
		panic("call to errs.E with no arguments")
	}

	e := &Error{}

	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case Parameter:
			e.Param = a
		case string:
			e.Err = errors.New(a)
		case *Error:
			cp := *a
			e.Err = &cp
		case error:
			e.Err = a
		case nil:
		default:
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	prev, ok := e.Err.(*Error)
	if !ok {
		return e
	}

	if prev.Kind == e.Kind {
		prev.Kind = Other
	}

	if e.Kind == Other {
		e.Kind = prev.Kind
		prev.Kind = Other
	}

	if prev.Param == e.Param {
		prev.Param = ""
	}

	if e.Param == "" {
		e.Param = prev.Param
		prev.Param = ""
	}

	return e
}

// Str returns an error that formats as the given text.
func Str(text string) error {
	return errors.New(text)
}

// KindIs reports whether err is an *Error of the given Kind.
func KindIs(kind Kind, err error) bool {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind != Other {
			return e.Kind == kind
		}

		if e.Err != nil {
			return KindIs(kind, e.Err)
		}
	}

	return false
}

// OpStack returns the operations recorded in the error chain, outermost first.
func OpStack(err error) []string {
	var ops []string

	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}

		if e.Op != "" {
			ops = append(ops, string(e.Op))
		}

		err = e.Err
	}

	return ops
}

// Message returns the innermost error message that isn't one of ours.
func Message(err error) string {
	var e *Error

	for errors.As(err, &e) {
		if e.Err == nil {
			return e.Kind.String()
		}

		err = e.Err
	}

	if err == nil {
		return ""
	}

	return strings.TrimSpace(err.Error())
}
