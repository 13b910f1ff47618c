package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/danswartzendruber/liner"
	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"github.com/tklauser/go-sysconf"
	"golang.org/x/term"

	"github.com/tsupplis/ubasic"
)

const usage = `ubasic

Usage:
  ubasic [options] PROGRAM
  ubasic -h | --help
  ubasic -v | --version

Arguments:
  PROGRAM  Path to the BASIC program to run.

Options:
  -t, --trace    Trace each executed line to stderr.
  -d, --dump     Dump interpreter state after each line.
  -s, --stats    Print CPU usage statistics on exit.
  -h, --help     Display this help.
  -v, --version  Print ubasic version.

PEEK and POKE operate on a 64KB byte array private to the process.
When standard input is a terminal, INPUT reads through a line editor
with history; otherwise it reads plain lines from standard input.
`

//
// The PEEK/POKE address space.  Addresses wrap modulo the array size
// and stored values are truncated to a byte, the way an 8-bit target
// would behave
//

var memory [65536]byte

func peek(addr int) int {

	return int(memory[addr&0xffff])
}

func poke(addr int, value int) {

	memory[addr&0xffff] = byte(value)
}

//
// Wall clock and CPU time bookkeeping for --stats
//

var startWall time.Time
var startUtime, startStime int64

func initClock() {

	startWall = time.Now()
	startUtime, startStime = getCPUInfo()
}

func printCpuUsage() {

	elapsed := time.Since(startWall)
	utime, stime := getCPUInfo()

	fmt.Printf("CPU Usage: elapsed = %s / user = %s / system = %s\n",
		formatCPUTime(int64(elapsed.Seconds())),
		formatCPUTime(utime-startUtime), formatCPUTime(stime-startStime))
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

func getCPUInfo() (int64, int64) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil {
		panic(err)
	}

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		panic(err)
	}

	fields := strings.Fields(string(contents))

	utime, err := strconv.ParseInt(fields[13], 10, 64)
	if err != nil {
		panic(err)
	}

	stime, err := strconv.ParseInt(fields[14], 10, 64)
	if err != nil {
		panic(err)
	}

	return utime / clktck, stime / clktck
}

//
// INPUT plumbing.  On a real terminal we hand INPUT a line editor
// with history; anywhere else (pipes, redirection) a plain reader.
// The editor reports ^D as EOF and we fold ^C into EOF as well, so
// either one ends the program through the interpreter's own
// end-of-input fault
//

func setupLiner() *liner.State {

	l := liner.NewLiner()

	l.SetCtrlCAborts(true)

	return l
}

func linerInput(l *liner.State) func() (string, error) {

	return func() (string, error) {

		s, err := l.Prompt("")

		if err != nil {
			if err == liner.ErrPromptAborted {
				return "", io.EOF
			}
			return "", err
		}

		l.AppendHistory(s)

		return s + "\n", nil
	}
}

func interactive() bool {

	return isatty.IsTerminal(os.Stdin.Fd()) &&
		term.IsTerminal(int(os.Stdout.Fd()))
}

func main() {

	opts, err := docopt.ParseArgs(usage, os.Args[1:], ubasic.VERSION)
	if err != nil {
		panic(err)
	}

	path, _ := opts.String("PROGRAM")
	trace, _ := opts.Bool("--trace")
	dump, _ := opts.Bool("--dump")
	stats, _ := opts.Bool("--stats")

	program, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ubasic: %v\n", err)
		os.Exit(2)
	}

	cfg := ubasic.Config{
		Peek:      peek,
		Poke:      poke,
		TraceExec: trace,
		TraceDump: dump,
	}

	var l *liner.State

	if interactive() {
		l = setupLiner()

		cfg.Input = linerInput(l)
	}

	//
	// ^C during a PRINT loop or a runaway program must restore the
	// terminal before the process dies
	//

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigs
		if l != nil {
			l.Close()
		}
		os.Exit(2)
	}()

	if stats {
		initClock()
	}

	in := ubasic.New(string(program), cfg)

	err = in.Run()

	if l != nil {
		l.Close()
	}

	if stats {
		printCpuUsage()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
