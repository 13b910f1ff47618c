package ubasic

import (
	"io"
	"math/rand"
)

//
// Constants
//

const VERSION = "1.0.0"

const defaultForStackMax = 4
const defaultGosubStackMax = 10
const defaultArenaSize = 512

const maxStringLen = 255

const numVarLetters = 26
const numIntSlots = 11
const maxIntVarnum = numVarLetters * numIntSlots

const maxSubscriptSlots = 10

const tabStop = 8

const inputPrompt = "? "

//
// Token kinds.  These are produced by the token source and consumed
// by the expression evaluator and the statement dispatcher
//

type Token int

const (
	TokError Token = iota
	TokEndOfInput
	TokNumber
	TokString
	TokIntVar
	TokStringVar

	TokComma
	TokSemicolon
	TokPlus
	TokMinus
	TokAsterisk
	TokSlash
	TokMod
	TokAnd
	TokOr
	TokLeftParen
	TokRightParen
	TokLT
	TokGT
	TokEQ
	TokNE
	TokLE
	TokGE

	TokLet
	TokPrint
	TokIf
	TokThen
	TokElse
	TokGo
	TokTo
	TokSub
	TokReturn
	TokFor
	TokStep
	TokNext
	TokPoke
	TokStop
	TokRem
	TokData
	TokRandomize
	TokOption
	TokBase
	TokInput
	TokRestore
	TokTab

	// Numeric built-in functions

	TokPeek
	TokAbs
	TokInt
	TokSgn
	TokLen
	TokCode
	TokVal

	// String built-in functions

	TokLeftStr
	TokRightStr
	TokMidStr
	TokChrStr

	TokCR
)

//
// SrcPos is an opaque, comparable, restorable position in the token
// stream.  The built-in tokenizer uses byte offsets; the interpreter
// core never looks inside
//

type SrcPos int

//
// TokenSource is the contract between the interpreter core and the
// tokenizer.  Token() reports the current token without consuming it;
// Next() advances.  Num(), Variable() and the string accessors expose
// the current token's payload.  Pos()/Goto() and Push()/Pop() support
// the jump and RESTORE machinery.  A token source reports malformed
// input through the error hook it was constructed with
//

type TokenSource interface {
	Token() Token
	Next()
	Num() int
	Variable() int
	StringLen() int
	StringFunc(sink func(byte))
	Pos() SrcPos
	Goto(pos SrcPos)
	Push()
	Pop()
	Newline()
	Finished() bool
}

//
// Host memory hooks.  The core performs no validation beyond passing
// through the evaluated operands
//

type PeekFunc func(addr int) int
type PokeFunc func(addr int, value int)

//
// Config carries the embedding host's hooks and limits.  The zero
// value of each field selects the default: stdout output, stdin
// input, FOR depth 4, GOSUB depth 10, 512 byte string arena
//

type Config struct {
	Peek   PeekFunc
	Poke   PokeFunc
	Output io.Writer
	Input  func() (string, error)

	ForStackDepth   int
	GosubStackDepth int
	ArenaSize       int

	TraceExec bool
	TraceDump bool
}

//
// A FOR loop descriptor.  resumeLine is the line immediately after
// the FOR statement; only the top frame is ever consulted by NEXT
//

type forState struct {
	resumeLine int
	ref        varRef
	to         int
	step       int
}

//
// Interp is one interpreter instance.  All mutable state (variables,
// stacks, arena, line index, DATA cursor) lives here, so independent
// instances can coexist in one process.  A single instance is not
// safe for concurrent use without external locking
//

type Interp struct {
	cfg Config
	tz  TokenSource

	vars  symbolTable
	arena stringArena
	index lineIndex
	out   printer

	gosubStack []int
	forStack   []forState

	progStart SrcPos
	lineNum   int
	ended     bool

	arrayBase int

	dataPos  SrcPos
	dataSeek bool

	rng *rand.Rand
}
