package ubasic

import (
	"io"
	"strconv"
)

//
// PRINT output engine.  A character sink over the host-supplied
// writer that tracks the current output column so TAB(n) and the
// comma separator can pad correctly.  Backspace and delete move the
// column left; carriage return and newline reset it; a literal tab
// expands with spaces to the next tab stop
//

type printer struct {
	w   io.Writer
	pos int
}

func initPrinter(p *printer, w io.Writer) {

	p.w = w
	p.pos = 0
}

func (p *printer) charout(c byte) {

	if c == '\t' {
		for {
			p.charout(' ')
			if p.pos%tabStop == 0 {
				break
			}
		}
		return
	}

	p.w.Write([]byte{c})

	switch {
	case c == 8 || c == 127:
		if p.pos > 0 {
			p.pos--
		}

	case c == '\r' || c == '\n':
		p.pos = 0

	default:
		p.pos++
	}
}

//
// chartab pads with spaces until the output column reaches n.  A
// column at or past n already is left alone
//

func (p *printer) chartab(n int) {

	for p.pos < n {
		p.charout(' ')
	}
}

func (p *printer) charoutstr(s []byte) {

	b := strBytes(s)

	for i := 0; i < len(b); i++ {
		p.charout(b[i])
	}
}

func (p *printer) charoutnum(n int) {

	s := strconv.Itoa(n)

	for i := 0; i < len(s); i++ {
		p.charout(s[i])
	}
}

func (p *printer) newline() {

	p.charout('\n')
}
