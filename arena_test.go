package ubasic

import (
	"testing"
)

//
// faultKind runs f and reports the kind of the fault it raised, if
// any.  Non-fault panics propagate
//

func faultKind(f func()) (kind ErrorKind, faulted bool) {

	defer func() {
		if e := recover(); e != nil {
			rf, ok := e.(*runFault)
			if !ok {
				panic(e)
			}
			kind = rf.kind
			faulted = true
		}
	}()

	f()

	return 0, false
}

func TestArenaAlloc(t *testing.T) {

	a := newStringArena(16)

	p := a.alloc(3)

	if len(p) != 4 || p[0] != 3 {
		t.Fatalf("alloc(3): len %d prefix %d", len(p), p[0])
	}

	copy(p[1:], "ABC")

	q := a.alloc(0)

	if len(q) != 1 || q[0] != 0 {
		t.Fatalf("alloc(0): len %d prefix %d", len(q), q[0])
	}

	if a.next != 5 {
		t.Fatalf("next: got %d, want 5", a.next)
	}

	// The first allocation must be untouched by the second

	if string(strBytes(p)) != "ABC" {
		t.Fatalf("first allocation clobbered: %q", strBytes(p))
	}
}

func TestArenaReset(t *testing.T) {

	a := newStringArena(8)

	a.alloc(7)
	a.reset()

	p := a.alloc(7)

	if len(p) != 8 {
		t.Fatalf("alloc after reset: len %d", len(p))
	}
}

func TestArenaExhaustion(t *testing.T) {

	a := newStringArena(8)

	a.alloc(3) // uses 4

	kind, faulted := faultKind(func() { a.alloc(4) }) // needs 5

	if !faulted || kind != ErrOutOfSpace {
		t.Fatalf("faulted %v kind %v, want OutOfSpace", faulted, kind)
	}
}

func TestArenaStringTooLong(t *testing.T) {

	a := newStringArena(1024)

	kind, faulted := faultKind(func() { a.alloc(256) })

	if !faulted || kind != ErrOutOfSpace {
		t.Fatalf("faulted %v kind %v, want OutOfSpace", faulted, kind)
	}

	// 255 is the largest representable length

	p := a.alloc(255)

	if p[0] != 255 {
		t.Fatalf("prefix: got %d", p[0])
	}
}
