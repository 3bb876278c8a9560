/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package romutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

//
// TraceSink
//

// A TraceSink is something that can receive trace output, such as the
// per-frame status lines `svm run` prints. It buffers lines and only writes
// them out when Flush is called, so a frame's worth of trace output goes out
// as one write.
type TraceSink interface {
	// Say appends a line of trace output.
	Say(string)

	// Flush writes out everything appended by Say.
	Flush()
}

// NewWriterTraceSink creates a new TraceSink that writes to the given
// io.Writer.
func NewWriterTraceSink(w io.Writer) TraceSink {
	return &writerTraceSink{w: w}
}

// writerTraceSink is a TraceSink that outputs to an io.Writer.
type writerTraceSink struct {
	w       io.Writer
	buffer  strings.Builder
	hasData bool
}

// Say appends s to the sink's buffer.
func (wm *writerTraceSink) Say(s string) {
	// WriteString() always returns a nil error.
	wm.buffer.WriteString(s)
	wm.hasData = true
}

// Flush writes out everything buffered by Say.
func (wm *writerTraceSink) Flush() {
	if !wm.hasData {
		return
	}

	s := wm.buffer.String()
	wm.buffer.Reset()

	// Ignore errors. Hopefully this will not be too bad for the envisioned use
	// cases (std output and in-memory buffers).
	_, _ = wm.w.Write([]byte(s))
	wm.hasData = false
}

// MemoryTraceSink is a TraceSink that stores all output in memory so tests
// can check it later.
type MemoryTraceSink struct {
	Lines   []string
	buffer  strings.Builder
	hasData bool
}

// Say appends s to the sink's buffer.
func (mm *MemoryTraceSink) Say(s string) {
	mm.hasData = true
	mm.buffer.WriteString(s)
}

// Flush stores everything buffered by Say as one new entry in Lines.
func (mm *MemoryTraceSink) Flush() {
	if !mm.hasData {
		return
	}
	s := mm.buffer.String()
	mm.buffer.Reset()
	mm.Lines = append(mm.Lines, s)
	mm.hasData = false
}

//
// FrameClock
//

// A FrameClock supplies the delta_sec argument the VM scheduler needs for
// each call to VMState.Step. It abstracts away the difference between
// `svm run` (a fixed simulated step) and `svm run --interactive` (one step
// per line of operator input).
type FrameClock interface {
	// NextDelta returns the delta_sec to use for the next step, and whether
	// there is a next step at all (false means the clock is exhausted).
	NextDelta() (float32, bool)
}

// NewFixedFrameClock returns a FrameClock that produces n steps of the same
// delta, then stops. Handy for tests and for scripted demo runs.
func NewFixedFrameClock(delta float32, n int) FrameClock {
	return &fixedFrameClock{delta: delta, remaining: n}
}

type fixedFrameClock struct {
	delta     float32
	remaining int
}

// NextDelta implements FrameClock.
func (c *fixedFrameClock) NextDelta() (float32, bool) {
	if c.remaining <= 0 {
		return 0, false
	}
	c.remaining--
	return c.delta, true
}

// NewInteractiveFrameClock returns a FrameClock that reads one float-or-blank
// line from r per step; a blank line means "advance by defaultDelta", and
// EOF stops the clock. This is how `svm run --interactive` lets an operator
// single-step a scene from the terminal.
func NewInteractiveFrameClock(r io.Reader, defaultDelta float32) FrameClock {
	return &interactiveFrameClock{s: bufio.NewScanner(r), defaultDelta: defaultDelta}
}

type interactiveFrameClock struct {
	s            *bufio.Scanner
	defaultDelta float32
}

// NextDelta implements FrameClock.
func (c *interactiveFrameClock) NextDelta() (float32, bool) {
	if !c.s.Scan() {
		return 0, false
	}
	line := strings.TrimSpace(c.s.Text())
	if line == "" {
		return c.defaultDelta, true
	}
	var v float32
	if _, err := fmt.Sscan(line, &v); err != nil {
		return c.defaultDelta, true
	}
	return v, true
}

// StdTraceSinkAndClock returns a TraceSink writing to stdout and a
// FrameClock reading from stdin, for interactive CLI use.
func StdTraceSinkAndClock(defaultDelta float32) (TraceSink, FrameClock) {
	return NewWriterTraceSink(os.Stdout), NewInteractiveFrameClock(os.Stdin, defaultDelta)
}
