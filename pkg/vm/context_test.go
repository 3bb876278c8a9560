/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengb/scenevm/pkg/scebin"
)

func twoProcSce() *scebin.SceFile {
	return &scebin.SceFile{
		ProcHeaders: []scebin.ProcHeader{
			{ID: 1, Name: "caller"},
			{ID: 2, Name: "callee"},
		},
		Procs: map[uint32]*scebin.Proc{
			1: {Inst: []byte{1, 2, 3, 4}},
			2: {Inst: []byte{5, 6}},
		},
	}
}

// Frame isolation: set_local in a CALLed procedure does not affect the
// caller's get_local (§8).
func TestFrameIsolation(t *testing.T) {
	ec := NewExecutionContext(twoProcSce())
	ec.Call(1)
	caller, _ := ec.Current()
	caller.SetLocal(0, 11)

	ec.Call(2)
	callee, _ := ec.Current()
	callee.SetLocal(0, 22)

	assert.Equal(t, int32(22), mustLocal(t, callee, 0))
	assert.Equal(t, int32(11), mustLocal(t, caller, 0))
}

func mustLocal(t *testing.T, f *ProcFrame, slot int16) int32 {
	t.Helper()
	v, ok := f.GetLocal(slot)
	require.True(t, ok)
	return v
}

// Completion drain: after a CALLed procedure runs off its end, the caller's
// frame resumes (§8).
func TestCompletionDrain(t *testing.T) {
	ec := NewExecutionContext(twoProcSce())
	ec.Call(1)
	caller, _ := ec.Current()
	caller.JumpTo(2) // partway through caller's own buffer

	ec.Call(2)
	callee, _ := ec.Current()
	callee.JumpTo(uint32(len(callee.inst))) // callee runs off the end

	ec.DrainCompleted()
	cur, ok := ec.Current()
	require.True(t, ok)
	assert.Equal(t, caller, cur)
	assert.Equal(t, 2, cur.PC(), "caller's pc was untouched while callee ran")
}

func TestDrainCompletedPopsMultipleFrames(t *testing.T) {
	ec := NewExecutionContext(twoProcSce())
	ec.Call(1)
	top1, _ := ec.Current()
	top1.JumpTo(uint32(len(top1.inst)))

	ec.Call(2)
	top2, _ := ec.Current()
	top2.JumpTo(uint32(len(top2.inst)))

	ec.DrainCompleted()
	_, ok := ec.Current()
	assert.False(t, ok, "both frames were completed")
}

func TestCmpFlagSharedAcrossFrames(t *testing.T) {
	ec := NewExecutionContext(twoProcSce())
	ec.SetCmp(true)
	ec.Call(1)
	assert.True(t, ec.Cmp(), "cmp is a single field on the execution context, not per-frame")
}
