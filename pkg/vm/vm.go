/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// Package vm implements the scripted-scene virtual machine: a bytecode
// interpreter and cooperative, tick-driven command scheduler that drives a
// live 3D scene through the host package's interfaces.
package vm

import (
	"math/rand"

	"github.com/opengb/scenevm/pkg/host"
	"github.com/opengb/scenevm/pkg/scebin"
)

// SuccessorScene is the result of a LoadScene opcode: a request that the
// caller swap the running VM out for a freshly-loaded scene. Reserved by
// spec as "SuccessorDirector"; concretized here since this VM owns no
// notion of a director beyond this one handoff.
type SuccessorScene struct {
	Name string
	Sub  string
}

// VMState is the VM's process-wide state (§3): the procedure call stack,
// run mode, the host-owned GlobalState, the free-for-all ext scratchpad,
// and the ports to input and asset services. Held for the VM's entire
// lifetime; Step is the only entry point that advances it.
type VMState struct {
	exec    *ExecutionContext
	runMode RunMode
	global  host.GlobalState
	input   host.InputPort
	assets  host.AssetPort
	ext     map[extKey]any
	rng     *rand.Rand

	active []Command

	pendingSuccessor *SuccessorScene

	// fopCombinator is the pending combinator set by the most recent Fop
	// opcode, consumed by the very next comparison opcode (Gt/Ls/Eq/Neq/
	// Geq/Leq) and reset to fopCombinatorSet afterward.
	fopCombinator int32
}

// New creates a VM over sce, with no frame on the stack yet -- call CallProc
// or TryCallProcByName to start running a procedure.
func New(sce *scebin.SceFile, global host.GlobalState, input host.InputPort, assets host.AssetPort, rngSeed int64) *VMState {
	return &VMState{
		exec:   NewExecutionContext(sce),
		global: global,
		input:  input,
		assets: assets,
		ext:    make(map[extKey]any),
		rng:    rand.New(rand.NewSource(rngSeed)),
	}
}

// CallProc starts execution at procedure id, pushing its frame onto an
// otherwise-empty stack. Panics with *errs.ProcMissing if id is unknown.
func (s *VMState) CallProc(id uint32) {
	s.exec.Call(id)
}

// TryCallProcByName starts execution at the procedure named name, if it
// exists. Reports whether it was found and started.
func (s *VMState) TryCallProcByName(name string) bool {
	return s.exec.TryCallByName(name)
}

// GlobalState returns the host-owned global state threaded through the VM.
func (s *VMState) GlobalState() host.GlobalState {
	return s.global
}

// RunMode returns the VM's current run mode.
func (s *VMState) RunMode() RunMode {
	return s.runMode
}

// Ext reads a value previously stashed in the ext scratchpad.
func (s *VMState) Ext(key extKey) (any, bool) {
	v, ok := s.ext[key]
	return v, ok
}

// SetExt stashes a value in the ext scratchpad under key.
func (s *VMState) SetExt(key extKey, value any) {
	s.ext[key] = value
}

// DeleteExt removes key from the ext scratchpad.
func (s *VMState) DeleteExt(key extKey) {
	delete(s.ext, key)
}

// requestSuccessor records a pending scene swap, surfaced by the next Step
// return value. Called by the LoadScene command.
func (s *VMState) requestSuccessor(name, sub string) {
	s.pendingSuccessor = &SuccessorScene{Name: name, Sub: sub}
}

// Step is the VM's per-frame entry point (§4.G). It ticks GlobalState, then
// either drives the decode loop (when the active set is empty) or ticks
// every active command once and drains the finished ones. It returns a
// non-nil *SuccessorScene when a LoadScene opcode requested a scene swap
// during this step, and reports whether the script has run to completion
// (the execution context has no more frames and nothing is active).
func (s *VMState) Step(h host.SceneHost, deltaSec float32) (successor *SuccessorScene, done bool) {
	s.global.Tick(deltaSec)
	s.pendingSuccessor = nil

	if len(s.active) == 0 {
		s.decodeLoop(h, deltaSec)
	} else {
		s.tickActive(h, deltaSec)
	}

	done = len(s.active) == 0 && !s.hasPendingFrame()
	return s.pendingSuccessor, done
}

// hasPendingFrame reports whether the execution context still has a frame
// on its stack after draining completed ones.
func (s *VMState) hasPendingFrame() bool {
	s.exec.DrainCompleted()
	_, ok := s.exec.Current()
	return ok
}

// decodeLoop implements §4.G step 2: pull commands from the execution
// context, initialize and tick each, and keep decoding until either the
// script runs out or (in Sequential mode) one unfinished command is
// pending.
func (s *VMState) decodeLoop(h host.SceneHost, deltaSec float32) {
	for {
		cmd, ok := s.nextCommand()
		if !ok {
			return
		}

		cmd.Initialize(h, s)
		finished := s.tickOne(h, cmd, deltaSec)
		if !finished {
			s.active = append(s.active, cmd)
			if s.runMode == Sequential {
				return
			}
		}
	}
}

// tickActive implements §4.G step 3: tick every active command once, in the
// order they were added, and drop the ones that finish. A command added
// this frame is never ticked a second time within the same Step.
func (s *VMState) tickActive(h host.SceneHost, deltaSec float32) {
	remaining := s.active[:0]
	for _, cmd := range s.active {
		if !s.tickOne(h, cmd, deltaSec) {
			remaining = append(remaining, cmd)
		}
	}
	s.active = remaining
}

// tickOne ticks cmd. Decode-time failures (*errs.DecodeError,
// *errs.ProcMissing, *errs.UnknownOpcode) are fatal and propagate as panics
// up to whoever called Step; host failures are each command's own
// responsibility to catch, log via absorbHostError, and absorb by reporting
// themselves finished (§7).
func (s *VMState) tickOne(h host.SceneHost, cmd Command, deltaSec float32) bool {
	return cmd.Tick(h, s, deltaSec)
}

// nextCommand drains completed frames, decodes the next opcode from the
// (now-)top frame, and dispatches it into a Command. Returns false once the
// execution context has no frames left.
func (s *VMState) nextCommand() (Command, bool) {
	s.exec.DrainCompleted()
	frame, ok := s.exec.Current()
	if !ok {
		return nil, false
	}
	return dispatch(s.exec, frame), true
}

// Exec exposes the execution context for commands (Call/Goto/Fop/...) that
// need to manipulate the call stack or the shared cmp flag.
func (s *VMState) Exec() *ExecutionContext {
	return s.exec
}

// Input returns the input port for RoleInput's global form.
func (s *VMState) Input() host.InputPort {
	return s.input
}

// Assets returns the asset-existence port.
func (s *VMState) Assets() host.AssetPort {
	return s.assets
}

// RandIntn returns a uniform random integer in [0, n), using the VM's own
// seeded RNG so that Rnd opcodes are reproducible given a fixed seed.
func (s *VMState) RandIntn(n int32) int32 {
	if n <= 0 {
		return 0
	}
	return int32(s.rng.Int31n(n))
}

// setFopCombinator records the combinator set by a Fop opcode, to be
// consumed by the next comparison opcode.
func (s *VMState) setFopCombinator(op int32) {
	s.fopCombinator = op
}

// takeFopCombinator returns the pending combinator and resets it to the
// default (fopCombinatorSet), so each Fop only affects the single
// comparison that follows it.
func (s *VMState) takeFopCombinator() int32 {
	c := s.fopCombinator
	s.fopCombinator = fopCombinatorSet
	return c
}
