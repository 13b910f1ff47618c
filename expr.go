package ubasic

import "bytes"

//
// Recursive-descent expression evaluator.  Four strictly
// left-associative tiers: factor, term (multiplicative), expr
// (additive), relation (comparison).  Each tier evaluates its left
// operand with the tier below, then folds chained operators at its
// own level left to right
//

//
// Token classification helpers.  The function tokens sit in two
// contiguous runs, so classification is a range check
//

func isNumFunc(t Token) bool {

	return t >= TokPeek && t <= TokVal
}

func isStrFunc(t Token) bool {

	return t >= TokLeftStr && t <= TokChrStr
}

func isNumExprToken(t Token) bool {

	switch t {
	case TokNumber, TokIntVar, TokLeftParen, TokMinus:
		return true
	}

	return isNumFunc(t)
}

func isStrExprToken(t Token) bool {

	switch t {
	case TokString, TokStringVar:
		return true
	}

	return isStrFunc(t)
}

//
// Token acceptance.  acceptTok faults on a mismatch and returns the
// following token, which saves a lot of extra Token() calls in the
// statement code.  acceptEither consumes whichever of the two is
// present (preferring the second) and returns what it saw
//

func (in *Interp) acceptTok(tok Token) Token {

	runtimeCheck(in.tz.Token() == tok, ErrSyntax, ESYNTAX)

	in.tz.Next()

	return in.tz.Token()
}

func (in *Interp) acceptEither(tok1, tok2 Token) Token {

	t := in.tz.Token()

	if t == tok2 {
		in.acceptTok(tok2)
	} else {
		in.acceptTok(tok1)
	}

	return t
}

//
// variableRef parses a variable reference at the current token.
// String variables are scalar only.  An integer variable may carry a
// parenthesized subscript expression selecting one of the indexable
// slots; the subscript is interpreted against the current OPTION BASE
//

func (in *Interp) variableRef() varRef {

	letter := in.tz.Variable()

	if in.tz.Token() == TokStringVar {
		in.acceptTok(TokStringVar)
		return stringVarRef(letter)
	}

	if in.acceptTok(TokIntVar) == TokLeftParen {
		sub := in.bracketedIntExpr()

		slot := 1 + sub - in.arrayBase

		runtimeCheck(slot >= 1 && slot <= maxSubscriptSlots,
			ErrInvalidVariable, ESUBSCRIPT)

		return intVarRef(letter, slot)
	}

	return intVarRef(letter, 0)
}

//
// funcExpr parses a built-in function's parenthesized argument list
// against a fixed signature: one letter per argument, 'I' integer or
// 'S' string.  Each argument is a full expression and must match its
// expected tag
//

func (in *Interp) funcExpr(sig string) []typedValue {

	in.acceptTok(TokLeftParen)

	args := make([]typedValue, 0, 3)

	for i := 0; i < len(sig); i++ {
		v := in.expr()

		if sig[i] == 'S' {
			typecheckString(v)
		} else {
			typecheckInt(v)
		}

		args = append(args, v)

		if i+1 < len(sig) {
			in.acceptTok(TokComma)
		}
	}

	in.acceptTok(TokRightParen)

	return args
}

func (in *Interp) factor() typedValue {

	t := in.tz.Token()

	switch t {
	case TokString:

		//
		// Copy the literal into the arena so the value stays live
		// for the rest of the statement regardless of what the
		// tokenizer does next
		//

		p := in.arena.alloc(in.tz.StringLen())

		i := 1
		in.tz.StringFunc(func(b byte) {
			p[i] = b
			i++
		})

		in.acceptTok(TokString)

		return stringValue(p)

	case TokNumber:
		v := intValue(in.tz.Num())
		in.acceptTok(TokNumber)
		return v

	case TokLeftParen:
		in.acceptTok(TokLeftParen)
		v := in.expr()
		in.acceptTok(TokRightParen)
		return v

	case TokMinus:
		in.acceptTok(TokMinus)
		v := in.factor()
		typecheckInt(v)
		v.i = -v.i
		return v

	case TokIntVar, TokStringVar:
		return in.vars.fetch(in.variableRef())
	}

	if isNumFunc(t) {
		in.acceptTok(t)
		return in.numericBuiltin(t)
	}

	if isStrFunc(t) {
		in.acceptTok(t)
		return in.stringBuiltin(t)
	}

	raiseError(ErrSyntax, ESYNTAX)
	return typedValue{}
}

func (in *Interp) numericBuiltin(t Token) typedValue {

	var n int

	switch t {
	default:
		raiseError(ErrSyntax, ESYNTAX)

	case TokPeek:
		runtimeCheck(in.cfg.Peek != nil, ErrInvalidVariable, ENOPEEKPOKE)
		args := in.funcExpr("I")
		n = in.cfg.Peek(args[0].i)

	case TokAbs:
		args := in.funcExpr("I")
		n = args[0].i
		if n < 0 {
			n = -n
		}

	case TokInt:
		args := in.funcExpr("I")
		n = args[0].i

	case TokSgn:
		args := in.funcExpr("I")
		n = args[0].i
		if n > 1 {
			n = 1
		}
		if n < 0 {
			n = -1
		}

	case TokLen:
		args := in.funcExpr("S")
		n = strLen(args[0].s)

	case TokCode:
		args := in.funcExpr("S")
		if strLen(args[0].s) > 0 {
			n = int(args[0].s[1])
		}

	case TokVal:
		args := in.funcExpr("S")
		n = stringVal(args[0])
	}

	return intValue(n)
}

func (in *Interp) stringBuiltin(t Token) typedValue {

	switch t {
	default:
		raiseError(ErrSyntax, ESYNTAX)

	case TokLeftStr:
		args := in.funcExpr("SI")
		return in.stringCut(args[0], 1, args[1].i)

	case TokRightStr:
		args := in.funcExpr("SI")
		return in.stringCutRight(args[0], args[1].i)

	case TokMidStr:
		args := in.funcExpr("SII")
		return in.stringCut(args[0], args[1].i, args[2].i)

	case TokChrStr:

		//
		// CHR$ declares a length of 2 but writes only the first
		// content byte.  Historical behavior, kept
		//

		args := in.funcExpr("I")
		p := in.arena.alloc(2)
		p[1] = byte(args[0].i)
		return stringValue(p)
	}

	return typedValue{}
}

//
// stringCut takes n bytes of a string starting at 1-based position l,
// clamped: an out-of-range start yields the empty string, and the
// count is clamped to the bytes remaining
//

func (in *Interp) stringCut(t typedValue, l, n int) typedValue {

	f := strLen(t.s)

	if l > f || n < 0 {
		return stringValue(in.arena.alloc(0))
	}

	f -= l - 1
	if f < n {
		n = f
	}

	p := in.arena.alloc(n)
	copy(p[1:], t.s[l:l+n])

	return stringValue(p)
}

//
// stringCutRight computes the right-substring in terms of stringCut.
// When the requested count meets or exceeds the string's own length
// the result is the empty string, not the whole string.  Historical
// behavior, kept
//

func (in *Interp) stringCutRight(t typedValue, r int) typedValue {

	f := strLen(t.s) - r

	if f <= 0 {
		return stringValue(in.arena.alloc(0))
	}

	return in.stringCut(t, f+1, r)
}

//
// stringVal parses a length-prefixed string as a decimal integer with
// an optional leading minus.  An empty string or any non-digit is a
// type mismatch
//

func stringVal(t typedValue) int {

	b := strBytes(t.s)

	neg := false
	if len(b) > 0 && b[0] == '-' {
		neg = true
		b = b[1:]
	}

	runtimeCheck(len(b) > 0, ErrTypeMismatch, ETYPEMISMATCH)

	n := 0
	for i := 0; i < len(b); i++ {
		runtimeCheck(isDigit(b[i]), ErrTypeMismatch, ETYPEMISMATCH)
		n = 10*n + int(b[i]-'0')
	}

	if neg {
		n = -n
	}

	return n
}

//
// term: the multiplicative tier.  Both operands must be integers;
// division and modulo by zero are fatal
//

func (in *Interp) term() typedValue {

	v := in.factor()

	op := in.tz.Token()

	for op == TokAsterisk || op == TokSlash || op == TokMod {
		in.tz.Next()

		f2 := in.factor()

		typecheckInt(v)
		typecheckInt(f2)

		switch op {
		case TokAsterisk:
			v.i *= f2.i

		case TokSlash:
			runtimeCheck(f2.i != 0, ErrDivisionByZero, EDIVISIONBYZERO)
			v.i /= f2.i

		case TokMod:
			runtimeCheck(f2.i != 0, ErrDivisionByZero, EDIVISIONBYZERO)
			v.i %= f2.i
		}

		op = in.tz.Token()
	}

	return v
}

//
// expr: the additive tier.  Plus is integer addition or string
// concatenation depending on the operands; minus, and, or require
// integers on the left before the combined type is checked
//

func (in *Interp) expr() typedValue {

	v := in.term()

	op := in.tz.Token()

	for op == TokPlus || op == TokMinus || op == TokAnd || op == TokOr {
		in.tz.Next()

		t2 := in.term()

		if op != TokPlus {
			typecheckInt(v)
		}
		typecheckSame(v, t2)

		switch op {
		case TokPlus:
			if v.kind == typeInteger {
				v.i += t2.i
			} else {
				l := strLen(v.s)
				p := in.arena.alloc(l + strLen(t2.s))
				copy(p[1:], strBytes(v.s))
				copy(p[1+l:], strBytes(t2.s))
				v.s = p
			}

		case TokMinus:
			v.i -= t2.i

		case TokAnd:
			v.i &= t2.i

		case TokOr:
			v.i |= t2.i
		}

		op = in.tz.Token()
	}

	return v
}

//
// relation: the comparison tier.  Operands must share a tag.  String
// comparison is byte-lexicographic over the shorter operand with
// length as the tie-break.  Chained comparisons deliberately fold
// left to right, each one consuming the previous 0/1 result; the
// result is always retagged integer
//

func (in *Interp) relation() typedValue {

	r1 := in.expr()

	op := in.tz.Token()

	for op == TokLT || op == TokGT || op == TokEQ ||
		op == TokNE || op == TokLE || op == TokGE {
		in.tz.Next()

		r2 := in.expr()

		typecheckSame(r1, r2)

		var n int

		if r1.kind == typeInteger {
			switch op {
			case TokLT:
				n = boolToInt(r1.i < r2.i)
			case TokGT:
				n = boolToInt(r1.i > r2.i)
			case TokEQ:
				n = boolToInt(r1.i == r2.i)
			case TokLE:
				n = boolToInt(r1.i <= r2.i)
			case TokGE:
				n = boolToInt(r1.i >= r2.i)
			case TokNE:
				n = boolToInt(r1.i != r2.i)
			}
		} else {
			c := compareStrings(r1.s, r2.s)

			switch op {
			case TokLT:
				n = boolToInt(c == -1)
			case TokGT:
				n = boolToInt(c == 1)
			case TokEQ:
				n = boolToInt(c == 0)
			case TokLE:
				n = boolToInt(c != 1)
			case TokGE:
				n = boolToInt(c != -1)
			case TokNE:
				n = boolToInt(c != 0)
			}
		}

		r1 = intValue(n)

		op = in.tz.Token()
	}

	r1.kind = typeInteger

	return r1
}

func compareStrings(s1, s2 []byte) int {

	n := strLen(s1)
	if strLen(s2) < n {
		n = strLen(s2)
	}

	c := bytes.Compare(s1[1:1+n], s2[1:1+n])

	if c == 0 {
		if strLen(s1) > strLen(s2) {
			c = 1
		} else if strLen(s1) < strLen(s2) {
			c = -1
		}
	}

	return c
}

func boolToInt(b bool) int {

	if b {
		return 1
	}

	return 0
}

//
// Typed convenience wrappers
//

func (in *Interp) intExpr() int {

	v := in.expr()
	typecheckInt(v)

	return v.i
}

func (in *Interp) stringExpr() []byte {

	v := in.expr()
	typecheckString(v)

	return v.s
}

func (in *Interp) bracketedIntExpr() int {

	in.acceptTok(TokLeftParen)
	n := in.intExpr()
	in.acceptTok(TokRightParen)

	return n
}
