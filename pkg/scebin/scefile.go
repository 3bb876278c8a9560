/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package scebin

// ProcHeader describes one procedure in a SceFile: its id, its name (used
// for best-effort CALL-by-name), and the byte offset of its instruction
// buffer within the on-disk file (only meaningful to the loader; once a
// SceFile is in memory, Procs is indexed directly by id).
type ProcHeader struct {
	ID     uint32
	Name   string
	Offset uint32
}

// Proc is a single procedure's instruction buffer: a flat, little-endian
// stream of opcodes and their positional arguments, as decoded by a Cursor.
type Proc struct {
	Inst []byte
}

// SceFile is the immutable, in-memory form of a compiled scene's bytecode:
// an ordered list of procedure headers plus a lookup from procedure id to
// its instruction buffer. Parsing the on-disk representation into this shape
// is, per spec, an external concern -- Load in this package is a reference
// implementation provided for tests and the `svm` CLI, not a dependency of
// the VM core (vm.New takes an already-parsed *SceFile).
//
// A SceFile is shared, read-only state: many ProcFrames on the same
// ExecutionContext's stack may point at different Procs within the same
// SceFile, and none of them ever mutate it.
type SceFile struct {
	// ProcHeaders is the ordered sequence of procedure headers, in the
	// order they appeared in the source file.
	ProcHeaders []ProcHeader

	// Procs maps a procedure id to its instruction buffer.
	Procs map[uint32]*Proc
}

// HeaderByID returns the ProcHeader for id, and whether it was found.
func (f *SceFile) HeaderByID(id uint32) (ProcHeader, bool) {
	for _, h := range f.ProcHeaders {
		if h.ID == id {
			return h, true
		}
	}
	return ProcHeader{}, false
}

// HeaderByName returns the ProcHeader named name, and whether it was found.
// CALL-by-name is best-effort: an absent result is not itself an error, it's
// up to the caller (ExecutionContext.TryCallByName) to treat it as a no-op.
func (f *SceFile) HeaderByName(name string) (ProcHeader, bool) {
	for _, h := range f.ProcHeaders {
		if h.Name == name {
			return h, true
		}
	}
	return ProcHeader{}, false
}

// ProcByID returns the instruction buffer for procedure id, and whether it
// was found.
func (f *SceFile) ProcByID(id uint32) (*Proc, bool) {
	p, ok := f.Procs[id]
	return p, ok
}
