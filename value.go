package ubasic

//
// Value model.  A typedValue is either a machine integer or a
// reference to a length-prefixed string: one length byte (0-255)
// followed by that many raw bytes, no terminator.  The byte slice
// points into the string arena, a variable's owned buffer or the
// shared empty sentinel; it is never mutated through a typedValue
//

const (
	typeInteger = iota
	typeString
)

type typedValue struct {
	kind int
	i    int
	s    []byte
}

func intValue(i int) typedValue {

	return typedValue{kind: typeInteger, i: i}
}

func stringValue(s []byte) typedValue {

	return typedValue{kind: typeString, s: s}
}

//
// strLen and strBytes decode the Pascal-style prefix.  The declared
// length never exceeds the bytes actually present; allocation sites
// guarantee that
//

func strLen(s []byte) int {

	return int(s[0])
}

func strBytes(s []byte) []byte {

	return s[1 : 1+s[0]]
}

//
// Type checks.  Each raises a fatal TypeMismatch, in keeping with the
// no-recovery error policy
//

func typecheckInt(v typedValue) {

	runtimeCheck(v.kind == typeInteger, ErrTypeMismatch, ETYPEMISMATCH)
}

func typecheckString(v typedValue) {

	runtimeCheck(v.kind == typeString, ErrTypeMismatch, ETYPEMISMATCH)
}

func typecheckSame(l, r typedValue) {

	runtimeCheck(l.kind == r.kind, ErrTypeMismatch, ETYPEMISMATCH)
}

//
// Variable references.  A reference is a letter (26 values) plus, for
// integer variables, a slot offset: slot 0 is the scalar, slots 1-10
// are the indexable elements.  One bit distinguishes string variable
// references; the remaining bits are the slot index
//

type varRef uint16

const stringFlag varRef = 1 << 15

func intVarRef(letter, slot int) varRef {

	return varRef(letter*numIntSlots + slot)
}

func stringVarRef(letter int) varRef {

	return stringFlag | varRef(letter)
}

func (r varRef) isString() bool {

	return r&stringFlag != 0
}

func (r varRef) slot() int {

	return int(r &^ stringFlag)
}
