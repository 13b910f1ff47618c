package ubasic

import (
	"github.com/danswartzendruber/avl"
)

//
// Line index cache: line number -> source position, built up as lines
// are reached through ordinary forward execution.  Entries are only
// ever added, never removed, except on full reinitialization.  We
// keep the index in an AVL tree keyed by line number, and hide the
// AVL interface from the interpreter code behind a set of wrappers
//

type indexEntry struct {
	avl  avl.AvlNode
	line int
	pos  SrcPos
}

type lineIndex struct {
	root *avl.AvlNode
}

func initLineIndex(idx *lineIndex) {

	idx.root = nil
}

func cmpIndexKey(key any, node any) int {

	return cmpIntItems(key.(int), node.(*indexEntry).line)
}

func cmpIndexNode(node1, node2 any) int {

	return cmpIntItems(node1.(*indexEntry).line, node2.(*indexEntry).line)
}

func cmpIntItems(item1, item2 int) int {

	if item1 < item2 {
		return -1
	} else if item1 > item2 {
		return 1
	} else {
		return 0
	}
}

//
// find returns the cached source position for a line, if the line has
// been indexed
//

func (idx *lineIndex) find(line int) (SrcPos, bool) {

	p := avl.AvlTreeLookup(idx.root, line, cmpIndexKey)
	if p == nil {
		return 0, false
	}

	return p.(*indexEntry).pos, true
}

//
// add records a line's source position.  Re-adding a line that is
// already present is a no-op; positions never change for a given
// program
//

func (idx *lineIndex) add(line int, pos SrcPos) {

	if _, ok := idx.find(line); ok {
		return
	}

	entry := &indexEntry{line: line, pos: pos}

	p := avl.AvlTreeInsert(&idx.root, &entry.avl, entry, cmpIndexNode)

	basicAssert(p == nil, "duplicate line index entry")
}

//
// jumpLine repositions the token source at the named line.  A hit in
// the index is a direct reposition; a miss falls back to a linear
// scan from the program start, advancing line by line.  Lines found
// by the fallback scan are deliberately not added to the index: only
// forward execution indexes a line
//

func (in *Interp) jumpLine(linenum int) {

	if pos, ok := in.index.find(linenum); ok {
		in.tz.Goto(pos)
		return
	}

	in.jumpLineSlow(linenum)
}

func (in *Interp) jumpLineSlow(linenum int) {

	in.tz.Goto(in.progStart)

	for {
		if in.tz.Token() == TokNumber && in.tz.Num() == linenum {
			return
		}

		// Skip the rest of the line

		for in.tz.Token() != TokCR && in.tz.Token() != TokEndOfInput {
			in.tz.Next()
		}

		runtimeCheck(in.tz.Token() == TokCR, ErrUndefinedLine,
			EUNDEFINEDLINE)

		in.tz.Next()
	}
}
