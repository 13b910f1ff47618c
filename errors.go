package ubasic

import "fmt"

//
// Manifest constants for the interpreter error messages
//

const (
	ESYNTAX          = "Syntax"
	ETYPEMISMATCH    = "Type mismatch"
	EDIVISIONBYZERO  = "Division by zero"
	ESTRINGTOOLONG   = "String too long"
	ETEMPSPACE       = "Out of temporary space"
	EGOSUBDEPTH      = "Gosub stack exhausted"
	EMISMATCHEDNEXT  = "Mismatched NEXT"
	EUNDEFINEDLINE   = "Undefined line"
	EINVALIDBASE     = "Invalid base"
	EINVALIDVARIABLE = "Invalid variable"
	ESUBSCRIPT       = "Subscript out of range"
	ENOPEEKPOKE      = "No memory access hook"
	EENDOFINPUT      = "End of input"
)

//
// Error kinds.  Every kind is fatal to the whole run: the run loop
// reports it to the host and the program cannot be resumed.  The one
// deliberate exception, RETURN without GOSUB, never raises at all
//

type ErrorKind int

const (
	ErrSyntax ErrorKind = iota
	ErrTypeMismatch
	ErrDivisionByZero
	ErrOutOfSpace
	ErrStackExhausted
	ErrMismatchedNext
	ErrUndefinedLine
	ErrInvalidBase
	ErrInvalidVariable
	ErrEndOfInput
)

//
// RunError is what Step and Run hand to the embedding host when the
// program dies.  Line is the line number that was executing when the
// fault was raised, or 0 if no line was known
//

type RunError struct {
	Kind ErrorKind
	Line int
	Msg  string
}

func (e *RunError) Error() string {

	if e.Line != 0 {
		return fmt.Sprintf("Line %d: %s error.", e.Line, e.Msg)
	}

	return fmt.Sprintf("%s error.", e.Msg)
}

//
// Internal fault plumbing.  Anything below the run loop raises by
// panicking with a *runFault; the Step boundary recovers it and turns
// it into a *RunError.  This mirrors the crawlout discipline the
// statement handlers rely on: no handler ever continues past a fault
//

type runFault struct {
	kind ErrorKind
	msg  string
}

func raiseError(kind ErrorKind, msg string) {

	panic(&runFault{kind: kind, msg: msg})
}

func runtimeCheck(chk bool, kind ErrorKind, msg string) {

	if !chk {
		raiseError(kind, msg)
	}
}

//
// basicAssert guards internal invariants.  A failure here is a bug in
// the interpreter, not in the BASIC program, so it panics with a bare
// message and is not converted to a RunError
//

func basicAssert(chk bool, msg string) {

	if !chk {
		panic("ubasic internal: " + msg)
	}
}

//
// catchFault is installed by Step.  It converts a raised fault into
// the typed error the host sees, stamps in the current line number,
// and marks the program terminated so further Step calls are no-ops
//

func (in *Interp) catchFault(err *error) {

	e := recover()
	if e == nil {
		return
	}

	fault, ok := e.(*runFault)
	if !ok {
		panic(e)
	}

	in.ended = true

	*err = &RunError{Kind: fault.kind, Line: in.lineNum, Msg: fault.msg}
}
