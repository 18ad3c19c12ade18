// Package blockerr defines the failure taxonomy shared by the traversal,
// selection and offset packages.
package blockerr

import (
	"errors"
	"fmt"
)

// ErrCycle is matched by every StructuralError.
var ErrCycle = errors.New("cycle in document tree")

// ErrPrecondition is matched by every PreconditionError.
var ErrPrecondition = errors.New("precondition failed")

// Reason identifies which precondition failed.
type Reason uint8

const (
	ReasonNoSelection Reason = iota + 1
	ReasonNoRanges
	ReasonNoMarkedAncestor
	ReasonUnmounted
	ReasonNoTextEngine
	ReasonOffsetOutOfRange
	ReasonUnknownBlock
)

// String returns a human-readable name for the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNoSelection:
		return "no selection"
	case ReasonNoRanges:
		return "selection has no ranges"
	case ReasonNoMarkedAncestor:
		return "no marked ancestor"
	case ReasonUnmounted:
		return "block is not mounted"
	case ReasonNoTextEngine:
		return "block has no text engine"
	case ReasonOffsetOutOfRange:
		return "offset out of range"
	case ReasonUnknownBlock:
		return "unknown block"
	default:
		return "unknown"
	}
}

// StructuralError reports a defect in the shape of the document tree,
// such as a block reachable from itself.
type StructuralError struct {
	// Op is the operation that detected the defect ("next", "previous", "walk").
	Op string

	// ID is the block that was visited twice.
	ID string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %s: block %q visited twice", e.Op, ErrCycle, e.ID)
}

// Unwrap lets errors.Is match ErrCycle.
func (e *StructuralError) Unwrap() error {
	return ErrCycle
}

// PreconditionError reports that an input or collaborator was not in the
// state an operation requires.
type PreconditionError struct {
	Op     string
	Reason Reason

	// ID is the block involved, if any.
	ID string

	// Detail is optional free-form context.
	Detail string
}

func (e *PreconditionError) Error() string {
	msg := e.Op + ": " + e.Reason.String()
	if e.ID != "" {
		msg += fmt.Sprintf(" (block %q)", e.ID)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is matches ErrPrecondition and any PreconditionError target with the same
// Reason (a zero Reason in the target matches every reason).
func (e *PreconditionError) Is(target error) bool {
	if target == ErrPrecondition {
		return true
	}
	var other *PreconditionError
	if errors.As(target, &other) {
		return other.Reason == 0 || other.Reason == e.Reason
	}
	return false
}

// Precondition builds a PreconditionError.
func Precondition(op string, reason Reason, id string) *PreconditionError {
	return &PreconditionError{Op: op, Reason: reason, ID: id}
}

// Preconditionf builds a PreconditionError with a formatted detail message.
func Preconditionf(op string, reason Reason, id, format string, args ...any) *PreconditionError {
	return &PreconditionError{Op: op, Reason: reason, ID: id, Detail: fmt.Sprintf(format, args...)}
}

// HasReason reports whether err is a PreconditionError with the given reason.
func HasReason(err error, reason Reason) bool {
	var pe *PreconditionError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Reason == reason
}

// AmbiguityWarning describes a non-fatal condition where an operation had to
// pick one of several inputs. It is reported, never returned as an error.
type AmbiguityWarning struct {
	Op      string
	Message string
}

// String implements fmt.Stringer.
func (w AmbiguityWarning) String() string {
	return w.Op + ": " + w.Message
}
