package ubasic

import (
	"io"
	"testing"
)

func TestLineIndex(t *testing.T) {

	var idx lineIndex
	initLineIndex(&idx)

	if _, ok := idx.find(10); ok {
		t.Fatal("empty index found a line")
	}

	idx.add(10, 0)
	idx.add(30, 40)
	idx.add(20, 25)

	tests := []struct {
		line int
		pos  SrcPos
		ok   bool
	}{
		{10, 0, true},
		{20, 25, true},
		{30, 40, true},
		{15, 0, false},
		{40, 0, false},
	}

	for _, tc := range tests {
		pos, ok := idx.find(tc.line)
		if ok != tc.ok || (ok && pos != tc.pos) {
			t.Fatalf("find(%d): got %d %v, want %d %v",
				tc.line, pos, ok, tc.pos, tc.ok)
		}
	}

	// Re-adding an indexed line is a no-op, not a corruption

	idx.add(20, 999)

	if pos, _ := idx.find(20); pos != 25 {
		t.Fatalf("re-add moved line 20 to %d", pos)
	}
}

//
// Only lines reached by ordinary forward execution are indexed; a
// line located by the fallback scan is not
//

func TestIndexOnlyExecutedLines(t *testing.T) {

	in := New("10 GOTO 30\n20 PRINT 1\n30 PRINT 2\n",
		Config{Output: io.Discard})

	if err := in.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	if _, ok := in.index.find(10); !ok {
		t.Fatal("line 10 not indexed")
	}

	if _, ok := in.index.find(30); !ok {
		t.Fatal("line 30 not indexed")
	}

	if _, ok := in.index.find(20); ok {
		t.Fatal("skipped line 20 should not be indexed")
	}
}

func TestJumpBackwardUsesIndex(t *testing.T) {

	in := New("10 LET I = I + 1\n20 IF I < 3 THEN GOTO 10\n30 STOP\n",
		Config{Output: io.Discard})

	if err := in.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := in.vars.ints[intVarRef(8, 0).slot()]; got != 3 {
		t.Fatalf("I: got %d, want 3", got)
	}
}
