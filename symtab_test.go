package ubasic

import (
	"testing"
)

func TestSymtabIntegers(t *testing.T) {

	var st symbolTable
	initSymbolTable(&st)

	a0 := intVarRef(0, 0)
	a5 := intVarRef(0, 5)
	z10 := intVarRef(25, 10)

	st.store(a0, intValue(7))
	st.store(a5, intValue(-3))
	st.store(z10, intValue(99))

	if v := st.fetch(a0); v.kind != typeInteger || v.i != 7 {
		t.Fatalf("A: got %+v", v)
	}

	if v := st.fetch(a5); v.i != -3 {
		t.Fatalf("A slot 5: got %+v", v)
	}

	if v := st.fetch(z10); v.i != 99 {
		t.Fatalf("Z slot 10: got %+v", v)
	}

	// The scalar and its indexable slots are distinct

	if v := st.fetch(intVarRef(0, 1)); v.i != 0 {
		t.Fatalf("A slot 1 should be untouched: got %+v", v)
	}
}

func TestSymtabStrings(t *testing.T) {

	var st symbolTable
	initSymbolTable(&st)

	b := stringVarRef(1)

	// Unassigned reads the shared empty sentinel

	if v := st.fetch(b); v.kind != typeString || strLen(v.s) != 0 {
		t.Fatalf("unassigned B$: got %+v", v)
	}

	src := []byte{2, 'H', 'I'}
	st.store(b, stringValue(src))

	// The store owns its copy: mutating the source must not show

	src[1] = 'X'

	if v := st.fetch(b); string(strBytes(v.s)) != "HI" {
		t.Fatalf("B$: got %q", strBytes(v.s))
	}

	// Reassignment replaces the whole value

	st.store(b, stringValue([]byte{1, 'Q'}))

	if v := st.fetch(b); string(strBytes(v.s)) != "Q" {
		t.Fatalf("B$ after reassign: got %q", strBytes(v.s))
	}
}

func TestSymtabTypeMismatch(t *testing.T) {

	var st symbolTable
	initSymbolTable(&st)

	a := intVarRef(0, 0)
	b := stringVarRef(1)

	st.store(a, intValue(7))

	kind, faulted := faultKind(func() {
		st.store(a, stringValue([]byte{1, 'X'}))
	})

	if !faulted || kind != ErrTypeMismatch {
		t.Fatalf("int <- string: faulted %v kind %v", faulted, kind)
	}

	// The failed store leaves the variable alone

	if v := st.fetch(a); v.i != 7 {
		t.Fatalf("A after failed store: got %+v", v)
	}

	kind, faulted = faultKind(func() {
		st.store(b, intValue(1))
	})

	if !faulted || kind != ErrTypeMismatch {
		t.Fatalf("string <- int: faulted %v kind %v", faulted, kind)
	}
}
