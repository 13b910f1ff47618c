package ubasic

//
// Variable and string store.  Integer variables live in a fixed table
// of 26 letters x 11 slots (slot 0 is the scalar, 1-10 the indexable
// elements).  String variables are 26 scalar slots, each owning its
// buffer independently.  This store is the only place string bytes
// cross from arena or source lifetime into persistent lifetime
//

type symbolTable struct {
	ints    [maxIntVarnum]int
	strings [numVarLetters][]byte
}

//
// The shared empty-string sentinel.  Read-only: a never-assigned
// string variable aliases it, and it is never replaced in place
//

var nullString = []byte{0}

func initSymbolTable(st *symbolTable) {

	*st = symbolTable{}

	for i := range st.strings {
		st.strings[i] = nullString
	}
}

//
// fetch returns the value a reference denotes.  String reads hand
// back a read-reference to the variable's owned buffer, not a copy;
// assignment never mutates a buffer in place, so the reference stays
// valid until the variable is next assigned
//

func (st *symbolTable) fetch(ref varRef) typedValue {

	if ref.isString() {
		return stringValue(st.strings[ref.slot()])
	}

	runtimeCheck(ref.slot() < maxIntVarnum, ErrInvalidVariable,
		EINVALIDVARIABLE)

	return intValue(st.ints[ref.slot()])
}

//
// store assigns a value to a reference, enforcing that the value's
// tag matches the reference's kind.  String assignment copies the
// bytes into a fresh owned buffer; the previous buffer is simply
// dropped (the sentinel is shared and never owned)
//

func (st *symbolTable) store(ref varRef, v typedValue) {

	if ref.isString() {
		typecheckString(v)
		st.strings[ref.slot()] = stringSave(v.s)
		return
	}

	typecheckInt(v)

	runtimeCheck(ref.slot() < maxIntVarnum, ErrInvalidVariable,
		EINVALIDVARIABLE)

	st.ints[ref.slot()] = v.i
}

//
// stringSave copies a length-prefixed string into a buffer owned by
// the store, so the value survives the per-statement arena reset
//

func stringSave(p []byte) []byte {

	b := make([]byte, int(p[0])+1)
	copy(b, p[:int(p[0])+1])

	return b
}
