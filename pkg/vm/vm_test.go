/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengb/scenevm/pkg/demohost"
	"github.com/opengb/scenevm/pkg/host"
	"github.com/opengb/scenevm/pkg/scenetest"
	"github.com/opengb/scenevm/pkg/vm"
)

// Scenario 1: sequential idle+position (§8).
func TestSequentialIdleThenRoleSetPos(t *testing.T) {
	b := scenetest.NewBuilder().
		Idle(0.5).
		RoleSetPos(1, 10, 20)
	sce := scenetest.SceFile(1, "main", b)

	h := demohost.NewHost(nil)
	h.AddRole(1, "player", host.Vec3{})

	vmState := vm.New(sce, h, h, h, 1)
	require.True(t, vmState.TryCallProcByName("main"))

	_, done := vmState.Step(h, 0.25)
	assert.False(t, done)

	_, done = vmState.Step(h, 0.25)
	assert.True(t, done)

	role, err := h.Role(1)
	require.NoError(t, err)
	assert.Equal(t, host.Vec3{X: 10, Y: 0, Z: 20}, role.Position())
}

// letInstrLen is the byte width of a Let/Gt/Ls/Eq/... instruction: opcode
// (4) + slot (2) + value (4).
const letInstrLen = uint32(4 + 2 + 4)

// jumpInstrLen is the byte width of a Goto/TestGoto instruction: opcode (4)
// + target offset (4).
const jumpInstrLen = uint32(4 + 4)

// Scenario 2: Goto skips code (§8).
func TestGotoSkipsCode(t *testing.T) {
	b := scenetest.NewBuilder()
	b.Let(0, 0)
	target := b.Len() + jumpInstrLen + letInstrLen // skip the Let(0,99) that follows Goto
	b.Goto(target)
	b.Let(0, 99)
	b.Let(1, 7)

	sce := scenetest.SceFile(1, "main", b)
	h := demohost.NewHost(nil)
	vmState := vm.New(sce, h, h, h, 1)
	require.True(t, vmState.TryCallProcByName("main"))

	_, done := vmState.Step(h, 0.1)
	assert.True(t, done)

	_, ok := vmState.Exec().Current()
	assert.False(t, ok, "proc ran to completion, no frame left")
}

// Scenario 3: TestGoto true skips the following Let (§8).
func TestTestGotoTrueSkipsLet(t *testing.T) {
	b := scenetest.NewBuilder()
	b.Let(0, 5)
	b.Gt(0, 3)
	target := b.Len() + jumpInstrLen + letInstrLen // skip the Let(1,1) that follows TestGoto
	b.TestGoto(target)
	b.Let(1, 1)

	sce := scenetest.SceFile(1, "main", b)
	h := demohost.NewHost(nil)
	vmState := vm.New(sce, h, h, h, 1)
	require.True(t, vmState.TryCallProcByName("main"))

	_, done := vmState.Step(h, 0.1)
	assert.True(t, done)
}

// Scenario 4: RoleMoveTo termination (§8).
func TestRoleMoveToTermination(t *testing.T) {
	b := scenetest.NewBuilder().RoleMoveTo(1, 0, 350, 0)
	sce := scenetest.SceFile(1, "main", b)

	h := demohost.NewHost(nil)
	h.AddRole(1, "player", host.Vec3{})

	vmState := vm.New(sce, h, h, h, 1)
	require.True(t, vmState.TryCallProcByName("main"))

	_, done := vmState.Step(h, 1.0)
	assert.False(t, done, "350 units remain, speed 175/s, one tick of 1s isn't enough")

	_, done = vmState.Step(h, 1.0)
	assert.True(t, done)

	role, err := h.Role(1)
	require.NoError(t, err)
	assert.Equal(t, host.Vec3{X: 0, Y: 0, Z: 350}, role.Position())
}

// Scenario 6: DlgSel -> GetDlgSel (§8). SetRunMode(1) is required here: under
// the default Interleaved mode the decode loop doesn't stop just because
// DlgSel is still pending, so GetDlgSel would decode and read the dlgsel
// slot in the same Step call, before the player ever chooses. The step that
// finishes DlgSel decodes nothing further, so GetDlgSel runs one step later.
// Two trailing Idles keep the frame alive long enough to inspect the local
// it set: a frame is popped once its last instruction has been decoded.
func TestDlgSelThenGetDlgSel(t *testing.T) {
	b := scenetest.NewBuilder().
		SetRunMode(1).
		DlgSel("Yes", "No").
		GetDlgSel(5).
		Idle(1.0).
		Idle(1.0)
	sce := scenetest.SceFile(1, "main", b)

	h := demohost.NewHost(nil)
	vmState := vm.New(sce, h, h, h, 1)
	require.True(t, vmState.TryCallProcByName("main"))

	_, done := vmState.Step(h, 0.1)
	assert.False(t, done, "DlgSel is durative, waiting on the player")

	h.Select(1)

	_, done = vmState.Step(h, 0.1)
	assert.False(t, done, "DlgSel just finished; GetDlgSel and Idle are still pending")

	_, done = vmState.Step(h, 0.1)
	assert.False(t, done, "GetDlgSel ran; the first Idle(1.0) is active")

	frame, ok := vmState.Exec().Current()
	require.True(t, ok, "the second Idle(1.0) isn't decoded yet, frame is still alive")
	local, ok := frame.GetLocal(5)
	require.True(t, ok)
	assert.Equal(t, int32(1), local, "slot 5 holds the player's choice, index 1 (\"No\")")

	_, done = vmState.Step(h, 1.0)
	assert.False(t, done, "the first Idle finished; the second is decoded on the next step")

	_, done = vmState.Step(h, 1.0)
	assert.True(t, done)
}

// Run-mode invariant: in Sequential mode, the active set never holds more
// than one command (§8). Two back-to-back Idle(1.0) commands, stepped at
// 0.5s increments, take four steps (2.0s) to both finish: the second Idle
// is never decoded until the first leaves the active set. Under Interleaved
// both would be decoded together and finish after two 0.5s steps (1.0s).
func TestSequentialRunModeCapsActiveSetAtOne(t *testing.T) {
	b := scenetest.NewBuilder().
		SetRunMode(1).
		Idle(1.0).
		Idle(1.0)
	sce := scenetest.SceFile(1, "main", b)

	h := demohost.NewHost(nil)
	vmState := vm.New(sce, h, h, h, 1)
	require.True(t, vmState.TryCallProcByName("main"))

	for i := 0; i < 3; i++ {
		_, done := vmState.Step(h, 0.5)
		assert.False(t, done, "step %d: only one Idle is ever active at a time", i+1)
	}

	_, done := vmState.Step(h, 0.5)
	assert.True(t, done, "fourth 0.5s step, 2.0s total, finishes both Idles run back to back")
}

// HaveItem sets the shared cmp flag directly from SceneHost.HasItem (no dedicated
// scenario, but exercises §4.D's item-ownership query end to end).
func TestHaveItemSetsCmpFlag(t *testing.T) {
	b := scenetest.NewBuilder().HaveItem(42)
	sce := scenetest.SceFile(1, "main", b)

	h := demohost.NewHost(nil)
	h.GrantItem(42)

	vmState := vm.New(sce, h, h, h, 1)
	require.True(t, vmState.TryCallProcByName("main"))

	_, done := vmState.Step(h, 0.1)
	assert.True(t, done)
	assert.True(t, vmState.Exec().Cmp())
}

// LoadScene requests a successor scene and calls SetActiveScene on the host.
func TestLoadSceneRequestsSuccessor(t *testing.T) {
	b := scenetest.NewBuilder().LoadScene("chapter2", "intro")
	sce := scenetest.SceFile(1, "main", b)

	h := demohost.NewHost(nil)
	vmState := vm.New(sce, h, h, h, 1)
	require.True(t, vmState.TryCallProcByName("main"))

	successor, done := vmState.Step(h, 0.1)
	require.NotNil(t, successor)
	assert.Equal(t, "chapter2", successor.Name)
	assert.Equal(t, "intro", successor.Sub)
	assert.True(t, done)
}

func TestCallProcMissingPanics(t *testing.T) {
	sce := scenetest.SceFile(1, "main", scenetest.NewBuilder().Idle(0.1))
	h := demohost.NewHost(nil)
	vmState := vm.New(sce, h, h, h, 1)

	assert.Panics(t, func() { vmState.CallProc(999) })
}

func TestTryCallProcByNameMissing(t *testing.T) {
	sce := scenetest.SceFile(1, "main", scenetest.NewBuilder().Idle(0.1))
	h := demohost.NewHost(nil)
	vmState := vm.New(sce, h, h, h, 1)

	assert.False(t, vmState.TryCallProcByName("nonexistent"))
}
