/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import "github.com/opengb/scenevm/pkg/host"

// fopCombinator values: how a Fop opcode wants the very next comparison
// opcode's result folded into the existing cmp flag. The visible source
// doesn't exhaust Fop's operator table (see the Open Question recorded in
// DESIGN.md); this package only recovers enough of it to support chained
// conditions of the shape "Fop(and); Gt ...; Fop(or); Eq ...".
const (
	fopCombinatorSet = int32(0) // overwrite cmp with the new comparison result
	fopCombinatorAnd = int32(1) // cmp = cmp && new comparison result
	fopCombinatorOr  = int32(2) // cmp = cmp || new comparison result
)

// cmdNop decodes and discards its arguments, doing nothing. Used for every
// opcode in §4.D marked NOP.
type cmdNop struct{ baseCommand }

func (c *cmdNop) Tick(host.SceneHost, *VMState, float32) bool { return true }
func (c *cmdNop) Clone() Command                              { cp := *c; return &cp }

// cmdIdle implements opcode 1: accumulate delta_sec until length is
// reached.
type cmdIdle struct {
	baseCommand
	length  float32
	elapsed float32
}

func (c *cmdIdle) Tick(_ host.SceneHost, _ *VMState, deltaSec float32) bool {
	c.elapsed += deltaSec
	return c.elapsed >= c.length
}
func (c *cmdIdle) Clone() Command { cp := *c; return &cp }

// cmdSetRunMode implements opcode 2.
type cmdSetRunMode struct {
	baseCommand
	mode int32
}

func (c *cmdSetRunMode) Tick(_ host.SceneHost, s *VMState, _ float32) bool {
	s.runMode = RunMode(c.mode)
	return true
}
func (c *cmdSetRunMode) Clone() Command { cp := *c; return &cp }

// cmdGoto implements opcode 3: unconditional jump.
type cmdGoto struct {
	baseCommand
	offset uint32
}

func (c *cmdGoto) Tick(_ host.SceneHost, s *VMState, _ float32) bool {
	s.exec.Jump(c.offset)
	return true
}
func (c *cmdGoto) Clone() Command { cp := *c; return &cp }

// cmdTestGoto implements opcode 12: jump iff the cmp flag is true. Reading
// the flag does not clear it.
type cmdTestGoto struct {
	baseCommand
	offset uint32
}

func (c *cmdTestGoto) Tick(_ host.SceneHost, s *VMState, _ float32) bool {
	if s.exec.Cmp() {
		s.exec.Jump(c.offset)
	}
	return true
}
func (c *cmdTestGoto) Clone() Command { cp := *c; return &cp }

// cmdLet implements opcodes 13|65549: write a literal value to a local
// slot in the current (top) frame.
type cmdLet struct {
	baseCommand
	slot  int16
	value int32
}

func (c *cmdLet) Tick(_ host.SceneHost, s *VMState, _ float32) bool {
	if frame, ok := s.exec.Current(); ok {
		frame.SetLocal(c.slot, c.value)
	}
	return true
}
func (c *cmdLet) Clone() Command { cp := *c; return &cp }

// cmdCall implements opcode 16: push a new frame. The called procedure
// returns by running off its own end; the caller's frame and pc are
// untouched while it runs.
type cmdCall struct {
	baseCommand
	procID uint32
}

func (c *cmdCall) Tick(_ host.SceneHost, s *VMState, _ float32) bool {
	s.exec.Call(c.procID)
	return true
}
func (c *cmdCall) Clone() Command { cp := *c; return &cp }

// cmdRnd implements opcodes 17|65553: write a uniform random integer in
// [0, upper) to a local slot.
type cmdRnd struct {
	baseCommand
	slot  int16
	upper int32
}

func (c *cmdRnd) Tick(_ host.SceneHost, s *VMState, _ float32) bool {
	if frame, ok := s.exec.Current(); ok {
		frame.SetLocal(c.slot, s.RandIntn(c.upper))
	}
	return true
}
func (c *cmdRnd) Clone() Command { cp := *c; return &cp }

// cmdFop implements opcode 5: sets the combinator the very next comparison
// opcode folds its result through.
type cmdFop struct {
	baseCommand
	op int32
}

func (c *cmdFop) Tick(_ host.SceneHost, s *VMState, _ float32) bool {
	s.setFopCombinator(c.op)
	return true
}
func (c *cmdFop) Clone() Command { cp := *c; return &cp }

// cmpKind identifies which relational test a cmdCompare performs.
type cmpKind int

const (
	cmpGt cmpKind = iota
	cmpLs
	cmpEq
	cmpNeq
	cmpGeq
	cmpLeq
)

// cmdCompare implements opcodes 6-11 (and their |0x10000 aliases):
// compare local[slot] against value and combine the result into the
// shared cmp flag, per the pending Fop combinator.
type cmdCompare struct {
	baseCommand
	slot  int16
	value int32
	cmp   cmpKind
}

func (c *cmdCompare) Tick(_ host.SceneHost, s *VMState, _ float32) bool {
	frame, ok := s.exec.Current()
	if !ok {
		return true
	}
	local, _ := frame.GetLocal(c.slot)

	var result bool
	switch c.cmp {
	case cmpGt:
		result = local > c.value
	case cmpLs:
		result = local < c.value
	case cmpEq:
		result = local == c.value
	case cmpNeq:
		result = local != c.value
	case cmpGeq:
		result = local >= c.value
	case cmpLeq:
		result = local <= c.value
	}

	switch s.takeFopCombinator() {
	case fopCombinatorAnd:
		result = s.exec.Cmp() && result
	case fopCombinatorOr:
		result = s.exec.Cmp() || result
	}

	s.exec.SetCmp(result)
	return true
}
func (c *cmdCompare) Clone() Command { cp := *c; return &cp }
