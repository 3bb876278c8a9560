/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package demohost

import "github.com/opengb/scenevm/pkg/host"

// Camera is the reference host's in-memory host.CameraHandle. A MoveTo in
// progress is interpolated linearly by tick, called from Host.Tick
// (host.GlobalState).
type Camera struct {
	pos, target host.Vec3

	fromPos, fromTarget host.Vec3
	toPos, toTarget     host.Vec3
	duration, elapsed   float32
	moving              bool
}

func (c *Camera) Position() host.Vec3 { return c.pos }
func (c *Camera) Target() host.Vec3   { return c.target }

func (c *Camera) MoveTo(pos, target host.Vec3, duration float32) {
	c.fromPos, c.fromTarget = c.pos, c.target
	c.toPos, c.toTarget = pos, target
	c.duration = duration
	c.elapsed = 0
	c.moving = true
	if duration <= 0 {
		c.pos, c.target = pos, target
		c.moving = false
	}
}

func (c *Camera) Finished() bool {
	return !c.moving
}

func (c *Camera) SetImmediate(yRot, xRot float32, pos host.Vec3) {
	c.moving = false
	c.pos = pos
	// yRot/xRot describe an orientation this reference host doesn't model
	// beyond position + look-at target; it keeps the existing target so
	// Target() still returns something sane after a CameraSet.
}

func (c *Camera) ResetDefault(unk int32) {
	c.moving = false
	c.pos = host.Vec3{}
	c.target = host.Vec3{}
}

// tick advances an in-progress MoveTo by deltaSec.
func (c *Camera) tick(deltaSec float32) {
	if !c.moving {
		return
	}
	c.elapsed += deltaSec
	t := c.elapsed / c.duration
	if t >= 1 {
		c.pos, c.target = c.toPos, c.toTarget
		c.moving = false
		return
	}
	c.pos = lerp(c.fromPos, c.toPos, t)
	c.target = lerp(c.fromTarget, c.toTarget, t)
}

func lerp(a, b host.Vec3, t float32) host.Vec3 {
	return host.Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}
