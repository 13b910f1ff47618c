package ubasic

import (
	"math/rand"
	"os"
	"strings"
	"time"
)

//
// Statement executor.  Each executable line is exactly one statement;
// the leading token selects the handler.  Every handler leaves the
// token source either just past its line's terminator or repositioned
// by a jump, so lineStatement always begins at a line number
//

func (in *Interp) statement() {

	//
	// All transient strings from the previous statement die here.
	// Anything that had to survive was copied into variable storage
	//

	in.arena.reset()

	switch in.tz.Token() {
	case TokPrint:
		in.executePrint()

	case TokIf:
		in.executeIf()

	case TokGo:
		in.executeGo()

	case TokReturn:
		in.executeReturn()

	case TokFor:
		in.executeFor()

	case TokPoke:
		in.executePoke()

	case TokNext:
		in.executeNext()

	case TokStop:
		in.executeStop()

	case TokRem:
		in.executeRem()

	case TokData:
		in.executeData()

	case TokRandomize:
		in.executeRandomize()

	case TokOption:
		in.executeOption()

	case TokInput:
		in.executeInput()

	case TokRestore:
		in.executeRestore()

	case TokLet:
		in.acceptTok(TokLet)
		in.executeLet()

	case TokIntVar, TokStringVar:
		in.executeLet()

	default:
		raiseError(ErrSyntax, ESYNTAX)
	}
}

//
// lineStatement records the current line in the index cache before
// executing it.  This is the only place index entries are created:
// lines reached solely through the fallback scan stay unindexed
//

func (in *Interp) lineStatement() {

	runtimeCheck(in.tz.Token() == TokNumber, ErrSyntax, ESYNTAX)

	in.lineNum = in.tz.Num()

	in.index.add(in.lineNum, in.tz.Pos())

	in.traceLine()

	in.acceptTok(TokNumber)

	in.statement()
}

//
// PRINT.  Comma emits a tab, semicolon emits nothing; either
// suppresses the newline when it is the final item.  TAB(n) pads the
// output column.  Literal strings stream through the tokenizer's
// byte-sink primitive without touching the arena
//

func (in *Interp) executePrint() {

	in.acceptTok(TokPrint)

	nonl := false

	for {
		t := in.tz.Token()

		if t == TokCR || t == TokEndOfInput {
			break
		}

		nonl = false

		switch {
		case t == TokString:
			in.tz.StringFunc(in.out.charout)
			in.tz.Next()

		case isStrExprToken(t):
			in.out.charoutstr(in.stringExpr())

		case t == TokComma:
			in.out.charout('\t')
			nonl = true
			in.tz.Next()

		case t == TokSemicolon:
			nonl = true
			in.tz.Next()

		case t == TokTab:
			in.acceptTok(TokTab)
			in.out.chartab(in.bracketedIntExpr())

		case isNumExprToken(t):
			in.out.charoutnum(in.intExpr())

		default:
			raiseError(ErrSyntax, ESYNTAX)
		}
	}

	if !nonl {
		in.out.newline()
	}

	in.tz.Next()
}

//
// IF evaluates a relation and executes the single statement after
// THEN or, when false, the single statement after ELSE if present.
// The untaken branch is scanned token by token without evaluation
//

func (in *Interp) executeIf() {

	in.acceptTok(TokIf)

	r := in.relation()

	in.acceptTok(TokThen)

	if r.i != 0 {
		in.statement()
		return
	}

	for in.tz.Token() != TokElse && in.tz.Token() != TokCR &&
		in.tz.Token() != TokEndOfInput {
		in.tz.Next()
	}

	if in.tz.Token() == TokElse {
		in.tz.Next()
		in.statement()
	} else if in.tz.Token() == TokCR {
		in.tz.Next()
	}
}

//
// GO TO / GO SUB.  GOSUB records the line number following this one
// as the return target; a full stack is fatal, unlike the FOR stack
//

func (in *Interp) executeGo() {

	in.acceptTok(TokGo)

	t := in.acceptEither(TokTo, TokSub)

	linenum := in.intExpr()

	in.acceptTok(TokCR)

	if t == TokTo {
		in.jumpLine(linenum)
		return
	}

	runtimeCheck(len(in.gosubStack) < cap(in.gosubStack),
		ErrStackExhausted, EGOSUBDEPTH)

	in.gosubStack = append(in.gosubStack, in.tz.Num())

	in.jumpLine(linenum)
}

//
// RETURN with an empty stack is silently ignored; execution simply
// falls through to the next line.  This asymmetry with GOSUB's hard
// failure is deliberate
//

func (in *Interp) executeReturn() {

	in.acceptTok(TokReturn)

	n := len(in.gosubStack)

	if n == 0 {
		in.acceptTok(TokCR)
		return
	}

	linenum := in.gosubStack[n-1]
	in.gosubStack = in.gosubStack[:n-1]

	in.jumpLine(linenum)
}

//
// FOR stores the initial value into the loop variable, then pushes a
// descriptor if the stack has room.  A full stack drops the frame
// silently: the loop body still runs once, but NEXT will not match
//

func (in *Interp) executeFor() {

	in.acceptTok(TokFor)

	runtimeCheck(in.tz.Token() == TokIntVar, ErrSyntax, ESYNTAX)

	ref := in.variableRef()

	in.acceptTok(TokEQ)

	v := in.expr()
	typecheckInt(v)
	in.vars.store(ref, v)

	in.acceptTok(TokTo)

	to := in.intExpr()

	step := 1
	if in.tz.Token() == TokStep {
		in.acceptTok(TokStep)
		step = in.intExpr()
	}

	in.acceptTok(TokCR)

	if len(in.forStack) < cap(in.forStack) {
		in.forStack = append(in.forStack, forState{
			resumeLine: in.tz.Num(),
			ref:        ref,
			to:         to,
			step:       step,
		})
	}
}

//
// NEXT consults only the top frame; it does not search down the
// stack for a matching variable, so jumping out of a nested loop can
// desynchronize matching
//

func (in *Interp) executeNext() {

	in.acceptTok(TokNext)

	runtimeCheck(in.tz.Token() == TokIntVar, ErrSyntax, ESYNTAX)

	ref := in.variableRef()

	n := len(in.forStack)

	runtimeCheck(n > 0 && in.forStack[n-1].ref == ref,
		ErrMismatchedNext, EMISMATCHEDNEXT)

	fs := &in.forStack[n-1]

	v := in.vars.fetch(ref)
	v.i += fs.step
	in.vars.store(ref, v)

	// Loop termination depends upon the sign of STEP

	if (fs.step >= 0 && v.i <= fs.to) || (fs.step < 0 && v.i >= fs.to) {
		in.jumpLine(fs.resumeLine)
	} else {
		in.forStack = in.forStack[:n-1]
		in.acceptTok(TokCR)
	}
}

func (in *Interp) executePoke() {

	in.acceptTok(TokPoke)

	addr := in.intExpr()

	in.acceptTok(TokComma)

	value := in.intExpr()

	in.acceptTok(TokCR)

	runtimeCheck(in.cfg.Poke != nil, ErrInvalidVariable, ENOPEEKPOKE)

	in.cfg.Poke(addr, value)
}

func (in *Interp) executeStop() {

	in.acceptTok(TokStop)
	in.acceptTok(TokCR)

	in.ended = true
}

func (in *Interp) executeRem() {

	in.acceptTok(TokRem)

	in.tz.Newline()
}

//
// DATA validates that every comma-separated item is a literal and
// advances past them.  Values are not stored; the DATA cursor and
// RESTORE exist for an external READ implementation
//

func (in *Interp) executeData() {

	in.acceptTok(TokData)

	for {
		t := in.tz.Token()

		if t == TokString || t == TokNumber {
			in.tz.Next()
		} else {
			raiseError(ErrSyntax, ESYNTAX)
		}

		if in.acceptEither(TokCR, TokComma) == TokCR {
			break
		}
	}
}

//
// RANDOMIZE with no argument or zero seeds from host entropy; a
// nonzero argument seeds deterministically from that value
//

func (in *Interp) executeRandomize() {

	r := 0

	if in.acceptTok(TokRandomize) != TokCR {
		r = in.intExpr()
	}

	in.acceptTok(TokCR)

	if r == 0 {
		seed := int64(os.Getpid()) ^ int64(os.Getuid()) ^
			time.Now().UnixNano()
		in.rng = rand.New(rand.NewSource(seed))
	} else {
		in.rng = rand.New(rand.NewSource(int64(r)))
	}
}

func (in *Interp) executeOption() {

	in.acceptTok(TokOption)
	in.acceptTok(TokBase)

	r := in.intExpr()

	in.acceptTok(TokCR)

	runtimeCheck(r == 0 || r == 1, ErrInvalidBase, EINVALIDBASE)

	in.arrayBase = r
}

//
// INPUT prints the optional prompt (or "? "), then reads one line of
// external input per requested variable.  Integer variables get a
// best-effort numeric parse; string variables get the line with its
// trailing newline trimmed.  End of input is fatal
//

func (in *Interp) executeInput() {

	in.acceptTok(TokInput)

	t := in.tz.Token()

	if t == TokString {
		in.tz.StringFunc(in.out.charout)
		in.tz.Next()
		in.acceptEither(TokComma, TokSemicolon)
	} else if isStrExprToken(t) {
		in.out.charoutstr(in.stringExpr())
		in.acceptEither(TokComma, TokSemicolon)
	} else {
		for i := 0; i < len(inputPrompt); i++ {
			in.out.charout(inputPrompt[i])
		}
	}

	for {
		ref := in.variableRef()

		line, err := in.cfg.Input()

		runtimeCheck(err == nil, ErrEndOfInput, EENDOFINPUT)

		// The operator pressed return, so the column moves left

		in.out.pos = 0

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		var v typedValue

		if ref.isString() {
			p := in.arena.alloc(len(line))
			copy(p[1:], line)
			v = stringValue(p)
		} else {
			v = intValue(atoiLoose(line))
		}

		in.vars.store(ref, v)

		t = in.tz.Token()
		if t != TokCR {
			t = in.acceptEither(TokComma, TokSemicolon)
		}

		if t == TokCR {
			break
		}
	}

	in.acceptTok(TokCR)
}

//
// atoiLoose mimics atoi: optional leading whitespace and sign, then
// digits up to the first non-digit; no digits means zero
//

func atoiLoose(s string) int {

	i := 0

	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}

	neg := false

	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	n := 0

	for i < len(s) && isDigit(s[i]) {
		n = 10*n + int(s[i]-'0')
		i++
	}

	if neg {
		n = -n
	}

	return n
}

//
// RESTORE resets the DATA cursor to the program start, or to the
// named line, saving and restoring the tokenizer position around the
// jump used to locate it
//

func (in *Interp) executeRestore() {

	linenum := 0

	if in.acceptTok(TokRestore) != TokCR {
		linenum = in.intExpr()
	}

	in.acceptTok(TokCR)

	if linenum != 0 {
		in.tz.Push()
		in.jumpLine(linenum)
		in.dataPos = in.tz.Pos()
		in.tz.Pop()
	} else {
		in.dataPos = in.progStart
	}

	in.dataSeek = true
}

func (in *Interp) executeLet() {

	ref := in.variableRef()

	in.acceptTok(TokEQ)

	v := in.expr()

	in.vars.store(ref, v)

	in.acceptTok(TokCR)
}
