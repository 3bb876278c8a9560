/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import "github.com/opengb/scenevm/pkg/host"

// cmdPlaySound implements opcode 79.
type cmdPlaySound struct {
	baseCommand
	name   string
	repeat int32
}

func (c *cmdPlaySound) Tick(h host.SceneHost, _ *VMState, _ float32) bool {
	return absorbHostError("play_sound", h.PlaySound(c.name, c.repeat != 0))
}
func (c *cmdPlaySound) Clone() Command { cp := *c; return &cp }

// cmdMusic implements opcode 133.
type cmdMusic struct {
	baseCommand
	name string
	unk  int32
}

func (c *cmdMusic) Tick(h host.SceneHost, _ *VMState, _ float32) bool {
	return absorbHostError("play_music", h.PlayMusic(c.name, c.unk))
}
func (c *cmdMusic) Clone() Command { cp := *c; return &cp }

// cmdStopMusic implements opcode 134.
type cmdStopMusic struct{ baseCommand }

func (c *cmdStopMusic) Tick(h host.SceneHost, _ *VMState, _ float32) bool {
	return absorbHostError("stop_music", h.StopMusic())
}
func (c *cmdStopMusic) Clone() Command { cp := *c; return &cp }
