package ubasic

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"

	"github.com/goforj/godump"
)

//
// Interpreter construction and the cooperative run loop.  A host that
// wants to interleave its own work between BASIC lines calls Step
// repeatedly; Run is the convenience loop over Step
//

//
// New builds an interpreter over the program text using the built-in
// tokenizer.  Zero-valued Config fields select the defaults
//

func New(program string, cfg Config) *Interp {

	in := &Interp{cfg: cfg}

	in.tz = NewTokenizer(program, func(msg string) {
		raiseError(ErrSyntax, msg)
	})

	in.initState()

	return in
}

//
// NewFromSource builds an interpreter over a caller-supplied token
// source, for hosts that store programs in a pre-tokenized form
//

func NewFromSource(ts TokenSource, cfg Config) *Interp {

	in := &Interp{cfg: cfg, tz: ts}

	in.initState()

	return in
}

func (in *Interp) initState() {

	if in.cfg.Output == nil {
		in.cfg.Output = os.Stdout
	}

	if in.cfg.Input == nil {
		r := bufio.NewReader(os.Stdin)
		in.cfg.Input = func() (string, error) {
			return r.ReadString('\n')
		}
	}

	if in.cfg.ForStackDepth <= 0 {
		in.cfg.ForStackDepth = defaultForStackMax
	}

	if in.cfg.GosubStackDepth <= 0 {
		in.cfg.GosubStackDepth = defaultGosubStackMax
	}

	if in.cfg.ArenaSize <= 0 {
		in.cfg.ArenaSize = defaultArenaSize
	}

	initSymbolTable(&in.vars)
	initLineIndex(&in.index)
	initPrinter(&in.out, in.cfg.Output)

	in.arena = newStringArena(in.cfg.ArenaSize)

	in.gosubStack = make([]int, 0, in.cfg.GosubStackDepth)
	in.forStack = make([]forState, 0, in.cfg.ForStackDepth)

	in.progStart = in.tz.Pos()
	in.dataPos = in.progStart
	in.dataSeek = true

	in.rng = rand.New(rand.NewSource(1))
}

//
// Step executes exactly one program line.  A fault anywhere below it
// crawls out through the panic path, is converted to a *RunError, and
// permanently ends the program.  Calling Step after the program has
// finished is a harmless no-op
//

func (in *Interp) Step() (err error) {

	defer in.catchFault(&err)

	if in.Finished() {
		return nil
	}

	in.lineStatement()

	return nil
}

//
// Run steps the program to completion and returns the first fault,
// if any
//

func (in *Interp) Run() error {

	for !in.Finished() {
		if err := in.Step(); err != nil {
			return err
		}
	}

	return nil
}

//
// Finished reports whether the program has ended, either by running
// off the end of its text, executing STOP, or faulting
//

func (in *Interp) Finished() bool {

	return in.ended || in.tz.Finished()
}

//
// Rand exposes the seeded generator controlled by RANDOMIZE, for
// host-supplied PEEK-style extensions that want program-controlled
// randomness
//

func (in *Interp) Rand() *rand.Rand {

	return in.rng
}

//
// State snapshot used by Dump and the per-line trace.  Field names
// are what the operator sees in the dump output
//

type interpState struct {
	Line       int
	Ended      bool
	ArrayBase  int
	GosubStack []int
	ForStack   []forState
	ArenaUsed  int
	IntVars    map[string]int
	StringVars map[string]string
}

func (in *Interp) snapshot() interpState {

	st := interpState{
		Line:       in.lineNum,
		Ended:      in.ended,
		ArrayBase:  in.arrayBase,
		GosubStack: in.gosubStack,
		ForStack:   in.forStack,
		ArenaUsed:  in.arena.next,
		IntVars:    make(map[string]int),
		StringVars: make(map[string]string),
	}

	// Only variables holding nonzero or nonempty values are shown

	for i, v := range in.vars.ints {
		if v != 0 {
			letter := 'A' + i/numIntSlots
			slot := i % numIntSlots
			name := string(rune(letter))
			if slot != 0 {
				name = fmt.Sprintf("%c[%d]", letter,
					slot-1+in.arrayBase)
			}
			st.IntVars[name] = v
		}
	}

	for i, s := range in.vars.strings {
		if strLen(s) != 0 {
			name := string(rune('A'+i)) + "$"
			st.StringVars[name] = string(strBytes(s))
		}
	}

	return st
}

//
// Dump writes a structured dump of the interpreter state to stderr
//

func (in *Interp) Dump() {

	fmt.Fprint(os.Stderr, godump.DumpStr(in.snapshot()))
}

func (in *Interp) traceLine() {

	if in.cfg.TraceExec {
		fmt.Fprintf(os.Stderr, "Executing line %d\n", in.lineNum)
	}

	if in.cfg.TraceDump {
		in.Dump()
	}
}
