/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import "github.com/opengb/scenevm/pkg/host"

// hyFlyDuration is the fixed camera-move duration used by HyFly, which
// (unlike CameraMove) carries no trailing duration parameter of its own.
const hyFlyDuration = float32(1.5)

// cmdCameraMove implements opcode 34: move the camera's look-at target to
// a new world point, keeping its position fixed. u1 is read as the move's
// duration in seconds; u2 is decoded (per §4.A argument ordering) but has
// no assigned meaning in this VM.
type cmdCameraMove struct {
	baseCommand
	px, py, pz float32
	u1, u2     float32
}

func (c *cmdCameraMove) Initialize(h host.SceneHost, _ *VMState) {
	cam := h.Camera()
	duration := c.u1
	if duration <= 0 {
		duration = 1
	}
	cam.MoveTo(cam.Position(), host.Vec3{X: c.px, Y: c.py, Z: c.pz}, duration)
}

func (c *cmdCameraMove) Tick(h host.SceneHost, _ *VMState, _ float32) bool {
	return h.Camera().Finished()
}
func (c *cmdCameraMove) Clone() Command { cp := *c; return &cp }

// cmdCameraSet implements opcode 36: snap the camera to an exact
// configuration.
type cmdCameraSet struct {
	baseCommand
	yRot, xRot, unk float32
	x, y, z         float32
}

func (c *cmdCameraSet) Tick(h host.SceneHost, _ *VMState, _ float32) bool {
	h.Camera().SetImmediate(c.yRot, c.xRot, host.Vec3{X: c.x, Y: c.y, Z: c.z})
	return true
}
func (c *cmdCameraSet) Clone() Command { cp := *c; return &cp }

// cmdCameraDefault implements opcode 37.
type cmdCameraDefault struct {
	baseCommand
	unk int32
}

func (c *cmdCameraDefault) Tick(h host.SceneHost, _ *VMState, _ float32) bool {
	h.Camera().ResetDefault(c.unk)
	return true
}
func (c *cmdCameraDefault) Clone() Command { cp := *c; return &cp }

// cmdHyFly implements opcode 89: fly the camera's position to a new world
// point over hyFlyDuration, keeping its current look-at target.
type cmdHyFly struct {
	baseCommand
	px, py, pz float32
}

func (c *cmdHyFly) Initialize(h host.SceneHost, _ *VMState) {
	cam := h.Camera()
	cam.MoveTo(host.Vec3{X: c.px, Y: c.py, Z: c.pz}, cam.Target(), hyFlyDuration)
}

func (c *cmdHyFly) Tick(h host.SceneHost, _ *VMState, _ float32) bool {
	return h.Camera().Finished()
}
func (c *cmdHyFly) Clone() Command { cp := *c; return &cp }
