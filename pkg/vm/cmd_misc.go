/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import "github.com/opengb/scenevm/pkg/host"

// cmdLoadScene implements opcode 63: asks the host to swap in the named
// scene, then surfaces the request to whatever embeds the VM through
// Step's return value (see SuccessorScene) so it can replace this VM
// instance entirely.
type cmdLoadScene struct {
	baseCommand
	name, sub string
}

func (c *cmdLoadScene) Tick(h host.SceneHost, s *VMState, _ float32) bool {
	absorbHostError("set_active_scene", h.SetActiveScene(c.name, c.sub))
	s.requestSuccessor(c.name, c.sub)
	return true
}
func (c *cmdLoadScene) Clone() Command { cp := *c; return &cp }

// cmdHaveItem implements opcode 78: sets the cmp flag from the host's
// item-ownership query (SceneHost.HasItem).
type cmdHaveItem struct {
	baseCommand
	itemID int32
}

func (c *cmdHaveItem) Tick(h host.SceneHost, s *VMState, _ float32) bool {
	s.exec.SetCmp(h.HasItem(c.itemID))
	return true
}
func (c *cmdHaveItem) Clone() Command { cp := *c; return &cp }

// cmdObjectActive implements opcode 85.
type cmdObjectActive struct {
	baseCommand
	obj, active int32
}

func (c *cmdObjectActive) Tick(h host.SceneHost, _ *VMState, _ float32) bool {
	return absorbHostError("set_object_active", h.SetObjectActive(c.obj, c.active != 0))
}
func (c *cmdObjectActive) Clone() Command { cp := *c; return &cp }

// cmdGetAppr implements opcodes 108|65644: write the party's current
// appearance id to a local slot.
type cmdGetAppr struct {
	baseCommand
	slot int16
}

func (c *cmdGetAppr) Tick(h host.SceneHost, s *VMState, _ float32) bool {
	if frame, ok := s.exec.Current(); ok {
		frame.SetLocal(c.slot, h.CurrentAppearanceID())
	}
	return true
}
func (c *cmdGetAppr) Clone() Command { cp := *c; return &cp }
