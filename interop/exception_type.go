package interop

import "fmt"

// ExceptionType classifies an exception value.
type ExceptionType uint8

const (
	// ExceptionExit requests termination of the running program with an
	// exit status.
	ExceptionExit ExceptionType = iota
	// ExceptionInterrupt signals that execution was interrupted.
	ExceptionInterrupt
	// ExceptionRuntimeError is any other guest or host runtime failure.
	ExceptionRuntimeError
	// ExceptionParseError reports malformed source.
	ExceptionParseError
)

func (t ExceptionType) String() string {
	switch t {
	case ExceptionExit:
		return "EXIT"
	case ExceptionInterrupt:
		return "INTERRUPT"
	case ExceptionRuntimeError:
		return "RUNTIME_ERROR"
	case ExceptionParseError:
		return "PARSE_ERROR"
	}
	return fmt.Sprintf("ExceptionType(%d)", uint8(t))
}

// TriState is the answer of IsIdenticalOrUndefined. Undefined lets the
// other operand decide.
type TriState int8

const (
	Undefined TriState = iota
	True
	False
)

// TriStateOf converts a definite answer.
func TriStateOf(b bool) TriState {
	if b {
		return True
	}
	return False
}

func (t TriState) String() string {
	switch t {
	case True:
		return "TRUE"
	case False:
		return "FALSE"
	}
	return "UNDEFINED"
}
