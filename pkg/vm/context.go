/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"github.com/opengb/scenevm/pkg/scebin"
)

// ExecutionContext is the procedure call stack plus the VM-wide comparison
// flag (§4.B/§4.C). CALL pushes a new frame; a frame completing (running off
// the end of its instructions) pops it. The comparison flag set by Gt/Ls/Eq/
// Neq/Geq/Leq and read by TestGoto is shared across every frame, not
// frame-local.
type ExecutionContext struct {
	sce   *scebin.SceFile
	stack []*ProcFrame
	cmp   bool
}

// NewExecutionContext creates an empty execution context over sce. Nothing
// runs until Call or TryCallByName pushes a first frame.
func NewExecutionContext(sce *scebin.SceFile) *ExecutionContext {
	return &ExecutionContext{sce: sce}
}

// Call pushes a new frame for procedure id onto the stack. Panics with
// *errs.ProcMissing if id doesn't exist -- unlike CALL-by-name, CALL-by-id
// is assumed to always reference a real procedure.
func (ec *ExecutionContext) Call(id uint32) {
	ec.stack = append(ec.stack, newFrameByID(ec.sce, id))
}

// TryCallByName pushes a new frame for the procedure named name, if it
// exists. Reports whether the call happened.
func (ec *ExecutionContext) TryCallByName(name string) bool {
	frame, ok := newFrameByName(ec.sce, name)
	if !ok {
		return false
	}
	ec.stack = append(ec.stack, frame)
	return true
}

// Current returns the top-of-stack frame, and whether the stack is
// non-empty.
func (ec *ExecutionContext) Current() (*ProcFrame, bool) {
	if len(ec.stack) == 0 {
		return nil, false
	}
	return ec.stack[len(ec.stack)-1], true
}

// DrainCompleted pops every completed frame off the top of the stack. A
// frame is completed once its pc has run off the end of its instructions;
// popping it resumes its caller exactly where CALL left off, since the
// caller's frame (and pc) were never touched while the callee ran.
func (ec *ExecutionContext) DrainCompleted() {
	for len(ec.stack) > 0 && ec.stack[len(ec.stack)-1].Completed() {
		ec.stack = ec.stack[:len(ec.stack)-1]
	}
}

// Jump sets the program counter of the top-of-stack frame to addr.
func (ec *ExecutionContext) Jump(addr uint32) {
	if len(ec.stack) == 0 {
		return
	}
	ec.stack[len(ec.stack)-1].JumpTo(addr)
}

// Depth returns the number of frames currently on the stack.
func (ec *ExecutionContext) Depth() int {
	return len(ec.stack)
}

// SetCmp sets the shared comparison flag, written by Gt/Ls/Eq/Neq/Geq/Leq.
func (ec *ExecutionContext) SetCmp(v bool) {
	ec.cmp = v
}

// Cmp reads the shared comparison flag, read by TestGoto.
func (ec *ExecutionContext) Cmp() bool {
	return ec.cmp
}

// SceFile returns the scene file this context decodes procedures from,
// independent of the current frame.
func (ec *ExecutionContext) SceFile() *scebin.SceFile {
	return ec.sce
}
