package ubasic

//
// String arena.  A single fixed-size buffer holding every transient
// string produced while a statement executes: literals copied out of
// the program text, substring results, concatenations.  The arena is
// rewound unconditionally at the start of every statement, so a string
// that must outlive the statement has to be copied into variable
// storage first; nothing may hold an arena slice across statements
//

type stringArena struct {
	blob []byte
	next int
}

func newStringArena(size int) stringArena {

	return stringArena{blob: make([]byte, size)}
}

//
// alloc reserves space for a string of the given content length and
// returns the length-prefixed buffer with the prefix already written.
// A single string may not exceed 255 bytes, and the sum of all
// allocations since the last reset may not exceed the arena size.
// Both failures are fatal OutOfSpace conditions
//

func (a *stringArena) alloc(length int) []byte {

	runtimeCheck(length <= maxStringLen, ErrOutOfSpace, ESTRINGTOOLONG)

	runtimeCheck(a.next+length+1 <= len(a.blob), ErrOutOfSpace, ETEMPSPACE)

	p := a.blob[a.next : a.next+length+1]
	a.next += length + 1

	p[0] = byte(length)

	return p
}

func (a *stringArena) reset() {

	a.next = 0
}
