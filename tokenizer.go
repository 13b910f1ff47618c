package ubasic

import (
	"strings"
)

//
// The built-in token source: a byte scanner over an in-memory program
// image.  The interpreter core consumes it only through TokenSource,
// so an embedding host can substitute its own (for example one that
// streams a tokenized program out of ROM)
//

var keywordMap = map[string]Token{
	"LET":       TokLet,
	"PRINT":     TokPrint,
	"IF":        TokIf,
	"THEN":      TokThen,
	"ELSE":      TokElse,
	"GO":        TokGo,
	"TO":        TokTo,
	"SUB":       TokSub,
	"RETURN":    TokReturn,
	"FOR":       TokFor,
	"STEP":      TokStep,
	"NEXT":      TokNext,
	"POKE":      TokPoke,
	"STOP":      TokStop,
	"REM":       TokRem,
	"DATA":      TokData,
	"RANDOMIZE": TokRandomize,
	"OPTION":    TokOption,
	"BASE":      TokBase,
	"INPUT":     TokInput,
	"RESTORE":   TokRestore,
	"TAB":       TokTab,
	"AND":       TokAnd,
	"OR":        TokOr,
	"MOD":       TokMod,
	"PEEK":      TokPeek,
	"ABS":       TokAbs,
	"INT":       TokInt,
	"SGN":       TokSgn,
	"LEN":       TokLen,
	"CODE":      TokCode,
	"VAL":       TokVal,
	"LEFT$":     TokLeftStr,
	"RIGHT$":    TokRightStr,
	"MID$":      TokMidStr,
	"CHR$":      TokChrStr,
}

type Tokenizer struct {
	program  string
	pos      int
	tokStart int
	tok      Token
	lastTok  Token
	pending  Token
	num      int
	str      string
	letter   int
	posStack []SrcPos
	onError  func(msg string)
}

//
// NewTokenizer scans the first token immediately, so Token() is valid
// as soon as the tokenizer exists.  The error hook is invoked on
// malformed input that cannot even be represented as an error token
// (an unterminated string literal); it must not return normally
//

func NewTokenizer(program string, onError func(msg string)) *Tokenizer {

	t := &Tokenizer{program: program, onError: onError}

	t.lastTok = TokCR
	t.next()

	return t
}

func (t *Tokenizer) Token() Token {

	return t.tok
}

func (t *Tokenizer) Next() {

	t.next()
}

func (t *Tokenizer) Num() int {

	return t.num
}

func (t *Tokenizer) Variable() int {

	return t.letter
}

func (t *Tokenizer) StringLen() int {

	return len(t.str)
}

//
// StringFunc pushes the current string literal through the supplied
// byte sink.  This lets PRINT and INPUT emit a literal without the
// core copying it into the arena first
//

func (t *Tokenizer) StringFunc(sink func(byte)) {

	for i := 0; i < len(t.str); i++ {
		sink(t.str[i])
	}
}

func (t *Tokenizer) Pos() SrcPos {

	return SrcPos(t.tokStart)
}

func (t *Tokenizer) Goto(pos SrcPos) {

	t.pos = int(pos)
	t.pending = 0
	t.lastTok = TokCR

	t.next()
}

func (t *Tokenizer) Push() {

	t.posStack = append(t.posStack, t.Pos())
}

func (t *Tokenizer) Pop() {

	basicAssert(len(t.posStack) > 0, "tokenizer position stack underflow")

	pos := t.posStack[len(t.posStack)-1]
	t.posStack = t.posStack[:len(t.posStack)-1]

	t.Goto(pos)
}

//
// Newline discards the remainder of the current source line, then
// scans the first token of the next one.  Used by REM
//

func (t *Tokenizer) Newline() {

	if t.tok == TokCR || t.tok == TokEndOfInput {
		t.next()
		return
	}

	for t.pos < len(t.program) && t.program[t.pos] != '\n' {
		t.pos++
	}

	if t.pos < len(t.program) {
		t.pos++
	}

	t.lastTok = TokCR

	t.next()
}

func (t *Tokenizer) Finished() bool {

	return t.tok == TokEndOfInput
}

//
// The scanner proper
//

func isDigit(ch byte) bool {

	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {

	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

func (t *Tokenizer) next() {

	//
	// The GOTO and GOSUB keyword spellings are split into the two
	// token forms (GO TO / GO SUB) the statement code expects
	//

	if t.pending != 0 {
		t.tok = t.pending
		t.pending = 0
		t.lastTok = t.tok
		return
	}

	// Skip horizontal whitespace

	for t.pos < len(t.program) &&
		(t.program[t.pos] == ' ' || t.program[t.pos] == '\t' ||
			t.program[t.pos] == '\r') {
		t.pos++
	}

	t.tokStart = t.pos

	//
	// At end of text, synthesize one final CR if the program did not
	// end with a newline, so every line is properly terminated
	//

	if t.pos >= len(t.program) {
		if t.lastTok != TokCR && t.lastTok != TokEndOfInput {
			t.setTok(TokCR)
		} else {
			t.setTok(TokEndOfInput)
		}
		return
	}

	ch := t.program[t.pos]

	switch {
	case ch == '\n':
		t.pos++
		t.setTok(TokCR)

	case isDigit(ch):
		t.scanNumber()

	case ch == '"':
		t.scanString()

	case isLetter(ch):
		t.scanWord()

	default:
		t.scanOperator()
	}
}

func (t *Tokenizer) setTok(tok Token) {

	t.tok = tok
	t.lastTok = tok
}

func (t *Tokenizer) scanNumber() {

	n := 0

	for t.pos < len(t.program) && isDigit(t.program[t.pos]) {
		n = 10*n + int(t.program[t.pos]-'0')
		t.pos++
	}

	t.num = n
	t.setTok(TokNumber)
}

func (t *Tokenizer) scanString() {

	t.pos++ // opening quote

	start := t.pos

	for t.pos < len(t.program) && t.program[t.pos] != '"' {
		if t.program[t.pos] == '\n' {
			t.onError(ESYNTAX)
		}
		t.pos++
	}

	if t.pos >= len(t.program) {
		t.onError(ESYNTAX)
	}

	t.str = t.program[start:t.pos]
	t.pos++ // closing quote

	t.setTok(TokString)
}

func (t *Tokenizer) scanWord() {

	start := t.pos

	for t.pos < len(t.program) && isLetter(t.program[t.pos]) {
		t.pos++
	}

	if t.pos < len(t.program) && t.program[t.pos] == '$' {
		t.pos++
	}

	word := strings.ToUpper(t.program[start:t.pos])

	switch word {
	case "GOTO":
		t.pending = TokTo
		t.setTok(TokGo)
		return

	case "GOSUB":
		t.pending = TokSub
		t.setTok(TokGo)
		return
	}

	if tok, ok := keywordMap[word]; ok {
		t.setTok(tok)
		return
	}

	//
	// A bare letter is an integer variable, a letter followed by '$'
	// a string variable.  Anything longer is an error token; it only
	// faults if a statement actually tries to consume it, so text
	// after REM lexes harmlessly
	//

	if len(word) == 1 {
		t.letter = int(word[0] - 'A')
		t.setTok(TokIntVar)
		return
	}

	if len(word) == 2 && word[1] == '$' {
		t.letter = int(word[0] - 'A')
		t.setTok(TokStringVar)
		return
	}

	t.setTok(TokError)
}

func (t *Tokenizer) scanOperator() {

	ch := t.program[t.pos]
	t.pos++

	peek := byte(0)
	if t.pos < len(t.program) {
		peek = t.program[t.pos]
	}

	switch ch {
	case ',':
		t.setTok(TokComma)

	case ';':
		t.setTok(TokSemicolon)

	case '+':
		t.setTok(TokPlus)

	case '-':
		t.setTok(TokMinus)

	case '*':
		t.setTok(TokAsterisk)

	case '/':
		t.setTok(TokSlash)

	case '%':
		t.setTok(TokMod)

	case '&':
		t.setTok(TokAnd)

	case '|':
		t.setTok(TokOr)

	case '(':
		t.setTok(TokLeftParen)

	case ')':
		t.setTok(TokRightParen)

	case '=':
		t.setTok(TokEQ)

	case '<':
		if peek == '=' {
			t.pos++
			t.setTok(TokLE)
		} else if peek == '>' {
			t.pos++
			t.setTok(TokNE)
		} else {
			t.setTok(TokLT)
		}

	case '>':
		if peek == '=' {
			t.pos++
			t.setTok(TokGE)
		} else {
			t.setTok(TokGT)
		}

	default:
		t.setTok(TokError)
	}
}
