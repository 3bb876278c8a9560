/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"github.com/opengb/scenevm/pkg/errs"
	"github.com/opengb/scenevm/pkg/scebin"
)

// ProcFrame is a single procedure activation (§4.B): which procedure, a
// program counter into its instruction buffer, a frame-scoped local
// variable table, and the dialog-selection slot GetDlgSel reads from.
type ProcFrame struct {
	// procID identifies the procedure this frame is executing.
	procID uint32

	// procName is the procedure's name, kept around for trace output and
	// error messages.
	procName string

	// inst is the procedure's instruction buffer, shared with the SceFile
	// this frame's ExecutionContext was built from.
	inst []byte

	// pc is the program counter: a byte offset into inst. Always sits at
	// an opcode boundary between dispatches -- partially-decoded state is
	// never persisted.
	pc int

	// locals maps a frame-scoped i16 slot to its i32 value. Absent from the
	// map means "never set" (Let/Rnd/GetDlgSel/GetAppr write to it; the
	// comparison opcodes read it).
	locals map[int16]int32

	// dlgsel is set by DlgSel when the player chooses and read by GetDlgSel.
	dlgsel int32
}

// newFrame builds a frame bound to header's procedure within sce.
func newFrame(sce *scebin.SceFile, header scebin.ProcHeader) *ProcFrame {
	proc, ok := sce.ProcByID(header.ID)
	if !ok {
		// Headers and Procs are supposed to agree; if they don't, the
		// SceFile itself is broken.
		panic(errs.NewProcMissing(header.ID))
	}
	return &ProcFrame{
		procID:   header.ID,
		procName: header.Name,
		inst:     proc.Inst,
		locals:   make(map[int16]int32),
	}
}

// newFrameByID builds a frame for the procedure with the given id.
// ProcMissing if no such procedure exists.
func newFrameByID(sce *scebin.SceFile, id uint32) *ProcFrame {
	header, ok := sce.HeaderByID(id)
	if !ok {
		panic(errs.NewProcMissing(id))
	}
	return newFrame(sce, header)
}

// newFrameByName builds a frame for the procedure named name. Returns nil,
// false if no such procedure exists -- CALL-by-name is best-effort, not an
// error.
func newFrameByName(sce *scebin.SceFile, name string) (*ProcFrame, bool) {
	header, ok := sce.HeaderByName(name)
	if !ok {
		return nil, false
	}
	return newFrame(sce, header), true
}

// SetLocal writes value to the frame-scoped local slot. Local-variable
// mutations never escape the enclosing frame.
func (f *ProcFrame) SetLocal(slot int16, value int32) {
	f.locals[slot] = value
}

// GetLocal reads the frame-scoped local slot. Returns (0, false) if the
// slot was never set in this frame.
func (f *ProcFrame) GetLocal(slot int16) (int32, bool) {
	v, ok := f.locals[slot]
	return v, ok
}

// SetDlgSel sets the dialog-selection slot, written by DlgSel on completion.
func (f *ProcFrame) SetDlgSel(v int32) {
	f.dlgsel = v
}

// GetDlgSel reads the dialog-selection slot.
func (f *ProcFrame) GetDlgSel() int32 {
	return f.dlgsel
}

// JumpTo sets pc to addr, an absolute byte offset within this frame's inst.
func (f *ProcFrame) JumpTo(addr uint32) {
	f.pc = int(addr)
}

// Putback rewinds pc by n bytes. Used to resurface an opcode after dispatch
// encounters an unrecognized code (see §7, UnknownOpcode).
func (f *ProcFrame) Putback(n int) {
	f.pc -= n
}

// Completed reports whether this frame has run off the end of its
// instruction buffer.
func (f *ProcFrame) Completed() bool {
	return f.pc >= len(f.inst)
}

// ProcID returns the id of the procedure this frame is executing.
func (f *ProcFrame) ProcID() uint32 {
	return f.procID
}

// ProcName returns the name of the procedure this frame is executing.
func (f *ProcFrame) ProcName() string {
	return f.procName
}

// PC returns the current program counter.
func (f *ProcFrame) PC() int {
	return f.pc
}
