/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package demohost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengb/scenevm/pkg/host"
)

func TestRoleLookupByIDAndName(t *testing.T) {
	h := NewHost(nil)
	h.AddRole(1, "hero", host.Vec3{X: 1, Y: 2, Z: 3})

	byID, err := h.Role(1)
	require.NoError(t, err)
	assert.Equal(t, host.Vec3{X: 1, Y: 2, Z: 3}, byID.Position())

	byName, err := h.RoleByName("hero")
	require.NoError(t, err)
	assert.Same(t, byID, byName)

	_, err = h.Role(999)
	assert.Error(t, err)

	_, err = h.RoleByName("nobody")
	assert.Error(t, err)
}

func TestGrantItemAndHasItem(t *testing.T) {
	h := NewHost(nil)
	assert.False(t, h.HasItem(42))
	h.GrantItem(42)
	assert.True(t, h.HasItem(42))
}

func TestSetAndGetAppearance(t *testing.T) {
	h := NewHost(nil)
	assert.Equal(t, int32(0), h.CurrentAppearanceID())
	h.SetAppearance(7)
	assert.Equal(t, int32(7), h.CurrentAppearanceID())
}

func TestNavToWorldIsIdentityMapping(t *testing.T) {
	h := NewHost(nil)
	pos, err := h.NavToWorld(10, 20)
	require.NoError(t, err)
	assert.Equal(t, host.Vec3{X: 10, Y: 0, Z: 20}, pos)
}

func TestExistsWithNoAssetSetAllowsAnything(t *testing.T) {
	h := NewHost(nil)
	assert.True(t, h.Exists("whatever.png"))
}

func TestExistsRestrictedBySetAssets(t *testing.T) {
	h := NewHost(nil)
	h.SetAssets("a.png", "b.png")
	assert.True(t, h.Exists("a.png"))
	assert.False(t, h.Exists("c.png"))
}

func TestDialogShowAndDismiss(t *testing.T) {
	h := NewHost(nil)
	dismissed := h.DialogShow("hello")
	assert.False(t, dismissed())
	h.Dismiss()
	assert.True(t, dismissed())
}

func TestDialogSelectBeforeAndAfterSelect(t *testing.T) {
	h := NewHost(nil)
	poll := h.DialogSelect([]string{"Yes", "No"})

	_, ok := poll()
	assert.False(t, ok, "no selection made yet")

	h.Select(1)
	idx, ok := poll()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestSetActiveScene(t *testing.T) {
	h := NewHost(nil)
	err := h.SetActiveScene("chapter2", "intro")
	require.NoError(t, err)
}

func TestSetObjectActive(t *testing.T) {
	h := NewHost(nil)
	err := h.SetObjectActive(5, true)
	require.NoError(t, err)
}
