package ubasic

import (
	"bytes"
	"io"
	"math/rand"
	"testing"
)

//
// One Step call executes exactly one line
//

func TestStepGranularity(t *testing.T) {

	var buf bytes.Buffer

	in := New("10 PRINT 1\n20 PRINT 2\n", Config{Output: &buf})

	if in.Finished() {
		t.Fatal("finished before stepping")
	}

	if err := in.Step(); err != nil {
		t.Fatalf("step 1: %v", err)
	}

	if got := buf.String(); got != "1\n" {
		t.Fatalf("after step 1: %q", got)
	}

	if in.Finished() {
		t.Fatal("finished after one of two lines")
	}

	if err := in.Step(); err != nil {
		t.Fatalf("step 2: %v", err)
	}

	if got := buf.String(); got != "1\n2\n" {
		t.Fatalf("after step 2: %q", got)
	}

	if !in.Finished() {
		t.Fatal("not finished after last line")
	}

	// Stepping a finished program is a no-op

	if err := in.Step(); err != nil {
		t.Fatalf("step past end: %v", err)
	}

	if got := buf.String(); got != "1\n2\n" {
		t.Fatalf("output changed after end: %q", got)
	}
}

func TestFaultReporting(t *testing.T) {

	in := New("10 PRINT 1\n20 GOTO 999\n30 PRINT 3\n",
		Config{Output: io.Discard})

	err := in.Run()

	re, ok := err.(*RunError)
	if !ok {
		t.Fatalf("got %T, want *RunError", err)
	}

	if re.Kind != ErrUndefinedLine || re.Line != 20 {
		t.Fatalf("got kind %v line %d", re.Kind, re.Line)
	}

	if re.Error() != "Line 20: Undefined line error." {
		t.Fatalf("message: %q", re.Error())
	}

	// A faulted program is permanently finished

	if !in.Finished() {
		t.Fatal("not finished after fault")
	}

	if err := in.Step(); err != nil {
		t.Fatalf("step after fault: %v", err)
	}
}

//
// Equal RANDOMIZE seeds must yield equal sequences; the entropy form
// just has to produce a usable generator
//

func TestRandomizeSeeding(t *testing.T) {

	seeded := func() *rand.Rand {
		in := New("10 RANDOMIZE 7\n", Config{Output: io.Discard})
		if err := in.Run(); err != nil {
			t.Fatalf("run: %v", err)
		}
		return in.Rand()
	}

	r1, r2 := seeded(), seeded()

	for i := 0; i < 8; i++ {
		if a, b := r1.Intn(1000000), r2.Intn(1000000); a != b {
			t.Fatalf("draw %d: %d != %d", i, a, b)
		}
	}

	in := New("10 RANDOMIZE\n", Config{Output: io.Discard})
	if err := in.Run(); err != nil {
		t.Fatalf("entropy form: %v", err)
	}
	in.Rand().Intn(10)
}

//
// Independent instances share nothing
//

func TestInstanceIsolation(t *testing.T) {

	var b1, b2 bytes.Buffer

	in1 := New("10 LET A = 1\n20 PRINT A\n", Config{Output: &b1})
	in2 := New("10 LET A = 2\n20 PRINT A\n", Config{Output: &b2})

	if err := in1.Step(); err != nil {
		t.Fatalf("in1 step: %v", err)
	}

	if err := in2.Run(); err != nil {
		t.Fatalf("in2 run: %v", err)
	}

	if err := in1.Run(); err != nil {
		t.Fatalf("in1 run: %v", err)
	}

	if b1.String() != "1\n" || b2.String() != "2\n" {
		t.Fatalf("outputs: %q %q", b1.String(), b2.String())
	}
}

func TestNewFromSource(t *testing.T) {

	var buf bytes.Buffer

	tz := NewTokenizer("10 PRINT 5\n", func(msg string) {
		raiseError(ErrSyntax, msg)
	})

	in := NewFromSource(tz, Config{Output: &buf})

	if err := in.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := buf.String(); got != "5\n" {
		t.Fatalf("output: %q", got)
	}
}

func TestSnapshot(t *testing.T) {

	in := New("10 LET A = 7\n20 LET B$ = \"HI\"\n30 LET C(2) = 9\n",
		Config{Output: io.Discard})

	if err := in.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	st := in.snapshot()

	if st.IntVars["A"] != 7 {
		t.Fatalf("A: %v", st.IntVars)
	}

	if st.IntVars["C[2]"] != 9 {
		t.Fatalf("C element: %v", st.IntVars)
	}

	if st.StringVars["B$"] != "HI" {
		t.Fatalf("B$: %v", st.StringVars)
	}

	if st.Line != 30 {
		t.Fatalf("line: %d", st.Line)
	}
}
