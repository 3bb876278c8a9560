/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// Package scenetest contains stuff used for testing the scene VM: a small
// bytecode assembler for building *scebin.SceFile fixtures directly in Go
// (SceFile's own on-disk format has no human-authored source form -- it's
// compiler output), and a TOML-driven end-to-end suite runner in the style
// of the `dev test` command's test package, adapted to drive a VM instance
// against a demohost.Host instead of compiling and running source files.
package scenetest

import (
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/opengb/scenevm/pkg/scebin"
)

// Builder assembles one procedure's instruction stream, opcode by opcode.
// It exists purely for tests: real SceFiles are produced by a compiler
// this VM never sees.
type Builder struct {
	buf []byte
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Len returns the number of bytes emitted so far -- handy for computing
// jump targets before the instruction they point at has been written.
func (b *Builder) Len() uint32 {
	return uint32(len(b.buf))
}

func (b *Builder) i32(v int32) *Builder {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	b.buf = append(b.buf, buf[:]...)
	return b
}

func (b *Builder) u32(v uint32) *Builder {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	b.buf = append(b.buf, buf[:]...)
	return b
}

func (b *Builder) i16(v int16) *Builder {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(v))
	b.buf = append(b.buf, buf[:]...)
	return b
}

func (b *Builder) f32(v float32) *Builder {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
	b.buf = append(b.buf, buf[:]...)
	return b
}

func (b *Builder) str(s string) *Builder {
	encoded, err := simplifiedchinese.GBK.NewEncoder().String(s)
	if err != nil {
		encoded = s
	}
	payload := append([]byte(encoded), 0)
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(payload)))
	b.buf = append(b.buf, lenBuf[:]...)
	b.buf = append(b.buf, payload...)
	return b
}

func (b *Builder) op(code int32) *Builder {
	return b.i32(code)
}

// Opcode emits a raw opcode followed by args already laid out as bytes, for
// opcodes this Builder has no dedicated helper for (NOP stubs mostly).
func (b *Builder) Opcode(code int32, args ...any) *Builder {
	b.op(code)
	for _, a := range args {
		switch v := a.(type) {
		case int32:
			b.i32(v)
		case uint32:
			b.u32(v)
		case int16:
			b.i16(v)
		case float32:
			b.f32(v)
		case string:
			b.str(v)
		default:
			panic("scenetest: unsupported Builder arg type")
		}
	}
	return b
}

func (b *Builder) Idle(length float32) *Builder        { return b.op(1).f32(length) }
func (b *Builder) SetRunMode(mode int32) *Builder      { return b.op(2).i32(mode) }
func (b *Builder) Goto(offset uint32) *Builder         { return b.op(3).u32(offset) }
func (b *Builder) Fop(op int32) *Builder               { return b.op(5).i32(op) }
func (b *Builder) Gt(slot int16, v int32) *Builder     { return b.op(6).i16(slot).i32(v) }
func (b *Builder) Ls(slot int16, v int32) *Builder     { return b.op(7).i16(slot).i32(v) }
func (b *Builder) Eq(slot int16, v int32) *Builder     { return b.op(8).i16(slot).i32(v) }
func (b *Builder) Neq(slot int16, v int32) *Builder    { return b.op(9).i16(slot).i32(v) }
func (b *Builder) Geq(slot int16, v int32) *Builder    { return b.op(10).i16(slot).i32(v) }
func (b *Builder) Leq(slot int16, v int32) *Builder    { return b.op(11).i16(slot).i32(v) }
func (b *Builder) TestGoto(offset uint32) *Builder     { return b.op(12).u32(offset) }
func (b *Builder) Let(slot int16, v int32) *Builder    { return b.op(13).i16(slot).i32(v) }
func (b *Builder) Call(procID uint32) *Builder         { return b.op(16).u32(procID) }
func (b *Builder) Rnd(slot int16, upper int32) *Builder { return b.op(17).i16(slot).i32(upper) }

func (b *Builder) RolePathTo(role, x, y, unused int32) *Builder {
	return b.op(20).i32(role).i32(x).i32(y).i32(unused)
}
func (b *Builder) RoleSetPos(role, x, y int32) *Builder {
	return b.op(21).i32(role).i32(x).i32(y)
}
func (b *Builder) RoleShowAction(role int32, action string, repeatMode int32) *Builder {
	return b.op(22).i32(role).str(action).i32(repeatMode)
}
func (b *Builder) RoleSetFace(role, dir int32) *Builder {
	return b.op(23).i32(role).i32(dir)
}
func (b *Builder) RoleTurnFace(role int32, deg float32) *Builder {
	return b.op(24).i32(role).f32(deg)
}
func (b *Builder) RoleInput(enable int32) *Builder { return b.op(27).i32(enable) }
func (b *Builder) RoleActive(role, active int32) *Builder {
	return b.op(28).i32(role).i32(active)
}

func (b *Builder) CameraMove(px, py, pz, u1, u2 float32) *Builder {
	return b.op(34).f32(px).f32(py).f32(pz).f32(u1).f32(u2)
}
func (b *Builder) CameraSet(yRot, xRot, unk, x, y, z float32) *Builder {
	return b.op(36).f32(yRot).f32(xRot).f32(unk).f32(x).f32(y).f32(z)
}
func (b *Builder) CameraDefault(unk int32) *Builder { return b.op(37).i32(unk) }

func (b *Builder) Dlg(text string) *Builder { return b.op(62).str(text) }
func (b *Builder) LoadScene(name, sub string) *Builder {
	return b.op(63).str(name).str(sub)
}

// DlgSel emits a DlgSel opcode. Every option is encoded with discriminator
// tag 0 (literal text); the VM discards the tag, so its value doesn't
// matter for anything this package tests.
func (b *Builder) DlgSel(options ...string) *Builder {
	b.op(65)
	var countBuf [2]byte
	binary.LittleEndian.PutUint16(countBuf[:], uint16(len(options)))
	b.buf = append(b.buf, countBuf[:]...)
	for _, o := range options {
		b.buf = append(b.buf, 0)
		b.str(o)
	}
	return b
}
func (b *Builder) GetDlgSel(slot int16) *Builder { return b.op(66).i16(slot) }

func (b *Builder) HaveItem(itemID int32) *Builder { return b.op(78).i32(itemID) }
func (b *Builder) PlaySound(name string, repeat int32) *Builder {
	return b.op(79).str(name).i32(repeat)
}
func (b *Builder) ObjectActive(obj, active int32) *Builder {
	return b.op(85).i32(obj).i32(active)
}
func (b *Builder) HyFly(px, py, pz float32) *Builder { return b.op(89).f32(px).f32(py).f32(pz) }
func (b *Builder) GetAppr(slot int16) *Builder       { return b.op(108).i16(slot) }
func (b *Builder) Music(name string, unk int32) *Builder {
	return b.op(133).str(name).i32(unk)
}
func (b *Builder) StopMusic() *Builder { return b.op(134) }

func (b *Builder) RolePathOut(role, x, y, unused int32) *Builder {
	return b.op(201).i32(role).i32(x).i32(y).i32(unused)
}
func (b *Builder) RoleCtrl(role int32) *Builder { return b.op(204).i32(role) }
func (b *Builder) RoleActAutoStand(role, autoIdle int32) *Builder {
	return b.op(207).i32(role).i32(autoIdle)
}
func (b *Builder) RoleMoveBack(role int32, speed float32) *Builder {
	return b.op(208).i32(role).f32(speed)
}
func (b *Builder) RoleFaceRole(role, otherRole int32) *Builder {
	return b.op(209).i32(role).i32(otherRole)
}
func (b *Builder) RoleMoveTo(role, x, y, unused int32) *Builder {
	return b.op(214).i32(role).i32(x).i32(y).i32(unused)
}

// Build returns the assembled instruction buffer.
func (b *Builder) Build() []byte {
	return b.buf
}

// SceFile is a convenience for the common case of a fixture with a single
// procedure.
func SceFile(procID uint32, name string, b *Builder) *scebin.SceFile {
	return &scebin.SceFile{
		ProcHeaders: []scebin.ProcHeader{{ID: procID, Name: name, Offset: 0}},
		Procs:       map[uint32]*scebin.Proc{procID: {Inst: b.Build()}},
	}
}

// MultiProcSceFile builds a fixture with several named procedures, keyed by
// id.
func MultiProcSceFile(procs map[uint32]struct {
	Name string
	Code *Builder
}) *scebin.SceFile {
	sce := &scebin.SceFile{Procs: make(map[uint32]*scebin.Proc)}
	for id, p := range procs {
		sce.ProcHeaders = append(sce.ProcHeaders, scebin.ProcHeader{ID: id, Name: p.Name})
		sce.Procs[id] = &scebin.Proc{Inst: p.Code.Build()}
	}
	return sce
}
