/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package demohost

import "github.com/opengb/scenevm/pkg/host"

// Role is the reference host's in-memory host.RoleHandle: it just
// remembers the values it's told. A started animation stays unfinished
// until FinishAnimation is called, which lets tests drive it
// deterministically.
type Role struct {
	id     int32
	name   string
	pos    host.Vec3
	facing host.FaceDirection

	anim         string
	animFinished bool

	active, inputControlled, autoIdle bool
}

func (r *Role) Position() host.Vec3              { return r.pos }
func (r *Role) SetPosition(p host.Vec3)          { r.pos = p }
func (r *Role) Facing() host.FaceDirection       { return r.facing }
func (r *Role) SetFacing(deg host.FaceDirection) { r.facing = deg }

func (r *Role) PlayAnimation(name string, repeatMode int32) {
	r.anim = name
	r.animFinished = false
}

func (r *Role) AnimationFinished() bool {
	return r.animFinished
}

// FinishAnimation lets tests simulate a non-looping animation completing,
// which is what RoleShowAction polls for before finishing.
func (r *Role) FinishAnimation() {
	r.animFinished = true
}

func (r *Role) SetActive(active bool)              { r.active = active }
func (r *Role) SetInputControlled(controlled bool) { r.inputControlled = controlled }
func (r *Role) SetAutoIdle(auto bool)              { r.autoIdle = auto }
func (r *Role) MoveLocalZ(delta float32)           { r.pos.Z += delta }
