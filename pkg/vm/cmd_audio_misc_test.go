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
	"github.com/opengb/scenevm/pkg/scenetest"
	"github.com/opengb/scenevm/pkg/vm"
)

func TestAudioCommandsRunToCompletion(t *testing.T) {
	b := scenetest.NewBuilder().
		PlaySound("chime.wav", 0).
		Music("theme.ogg", 0).
		StopMusic()
	sce := scenetest.SceFile(1, "main", b)

	h := demohost.NewHost(nil)
	vmState := vm.New(sce, h, h, h, 1)
	require.True(t, vmState.TryCallProcByName("main"))

	_, done := vmState.Step(h, 0.1)
	assert.True(t, done)
}

func TestObjectActiveTogglesHostState(t *testing.T) {
	b := scenetest.NewBuilder().ObjectActive(3, 1)
	sce := scenetest.SceFile(1, "main", b)

	h := demohost.NewHost(nil)
	vmState := vm.New(sce, h, h, h, 1)
	require.True(t, vmState.TryCallProcByName("main"))

	_, done := vmState.Step(h, 0.1)
	assert.True(t, done)
}

func TestGetApprReadsCurrentAppearance(t *testing.T) {
	b := scenetest.NewBuilder().SetRunMode(1).GetAppr(2).Idle(1.0).Idle(1.0)
	sce := scenetest.SceFile(1, "main", b)

	h := demohost.NewHost(nil)
	h.SetAppearance(5)
	vmState := vm.New(sce, h, h, h, 1)
	require.True(t, vmState.TryCallProcByName("main"))

	_, done := vmState.Step(h, 0.1)
	require.False(t, done, "the second Idle(1.0) isn't decoded yet, so the frame stays alive for inspection")

	frame, ok := vmState.Exec().Current()
	require.True(t, ok)
	local, ok := frame.GetLocal(2)
	require.True(t, ok)
	assert.Equal(t, int32(5), local)
}

func TestDlgShowWaitsForDismiss(t *testing.T) {
	b := scenetest.NewBuilder().
		SetRunMode(1).
		Dlg("Hello there.").
		Let(0, 1)
	sce := scenetest.SceFile(1, "main", b)

	h := demohost.NewHost(nil)
	vmState := vm.New(sce, h, h, h, 1)
	require.True(t, vmState.TryCallProcByName("main"))

	_, done := vmState.Step(h, 0.1)
	assert.False(t, done, "Dlg waits for the player to dismiss it")

	h.Dismiss()
	_, done = vmState.Step(h, 0.1)
	assert.False(t, done, "Dlg finished; the Let after it is decoded on the next step")

	_, done = vmState.Step(h, 0.1)
	assert.True(t, done)
}
