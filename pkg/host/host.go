/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// Package host declares the narrow interfaces the VM uses to talk to its
// external collaborators: the live scene graph, audio, input, asset
// loading, and the game's own global state. None of these are implemented
// here -- this package only specifies the boundary. pkg/demohost provides a
// reference implementation; a real game would provide its own.
package host

// Vec3 is a 3D point or vector in world space.
type Vec3 struct {
	X, Y, Z float32
}

// FaceDirection is a facing angle, in degrees, around the vertical axis.
type FaceDirection = float32

// RoleHandle is the VM's view of a role (character) entity: position and
// orientation are queried and set through it, and it exposes the handful of
// animation operations scene commands need.
type RoleHandle interface {
	// Position returns the role's current world-space position.
	Position() Vec3

	// SetPosition teleports the role to the given world-space position.
	SetPosition(p Vec3)

	// Facing returns the role's current facing angle, in degrees.
	Facing() FaceDirection

	// SetFacing sets the role's facing angle, in degrees.
	SetFacing(deg FaceDirection)

	// PlayAnimation starts the named animation. repeatMode mirrors the
	// opcode's repeat_mode argument (0 = play once, non-zero = loop); the
	// host reports completion of a non-looping animation via
	// AnimationFinished.
	PlayAnimation(name string, repeatMode int32)

	// AnimationFinished reports whether the animation most recently started
	// with PlayAnimation has finished playing. Looping animations never
	// finish.
	AnimationFinished() bool

	// SetActive shows or hides the role and enables or disables its update.
	SetActive(active bool)

	// SetInputControlled toggles whether player input drives this role
	// directly (RoleCtrl/RoleInput).
	SetInputControlled(controlled bool)

	// SetAutoIdle toggles whether the role automatically returns to an idle
	// stance when not otherwise animated (RoleActAutoStand).
	SetAutoIdle(auto bool)

	// MoveLocalZ translates the role by delta along its own local Z axis,
	// used by RoleMoveBack.
	MoveLocalZ(delta float32)
}

// SceneHost is the VM's view of the live scene graph and its surrounding
// engines, per spec.md §6.
type SceneHost interface {
	// Role returns the handle for the role identified by id.
	Role(id int32) (RoleHandle, error)

	// RoleByName returns the handle for the role identified by name.
	RoleByName(name string) (RoleHandle, error)

	// NavToWorld translates a 2D nav-mesh coordinate to a world-space point.
	NavToWorld(x, z int32) (Vec3, error)

	// RequestPath asks the nav mesh for a walkable path between two
	// world-space points, returned as a sequence of waypoints (inclusive of
	// the destination, exclusive of the start).
	RequestPath(role RoleHandle, from, to Vec3) ([]Vec3, error)

	// Camera returns the host's camera controller.
	Camera() CameraHandle

	// SetActiveScene requests that the host swap in the scene named name
	// (with the given sub-scene/state name), in response to a LoadScene
	// opcode. The swap itself, and any camera/fade state reset that comes
	// with it, is entirely the host's responsibility.
	SetActiveScene(name, sub string) error

	// SetObjectActive shows or hides the scene object identified by id.
	SetObjectActive(id int32, active bool) error

	// DialogShow displays text as a dialog/narration box. It returns a poll
	// function: calling it reports whether the player has dismissed the
	// dialog yet.
	DialogShow(text string) (poll func() bool)

	// DialogSelect displays a multiple-choice prompt. It returns a poll
	// function: calling it returns (selectedIndex, true) once the player
	// has chosen an option, or (0, false) while still waiting.
	DialogSelect(options []string) (poll func() (int, bool))

	// PlaySound plays a one-shot or looping sound effect.
	PlaySound(name string, repeat bool) error

	// PlayMusic starts background music playback.
	PlayMusic(name string, flags int32) error

	// StopMusic stops any currently-playing background music.
	StopMusic() error

	// HasItem answers a global-state item-ownership query (opcode 78,
	// HaveItem), which spec.md assigns to the host/global-state boundary
	// rather than to GlobalState directly, since it's framed as a scene
	// query in the original format.
	HasItem(itemID int32) bool

	// CurrentAppearanceID returns the party's current appearance id
	// (opcode 108, GetAppr).
	CurrentAppearanceID() int32
}

// CameraHandle lets commands drive the host's camera.
type CameraHandle interface {
	// Position returns the camera's current world-space position.
	Position() Vec3

	// Target returns the point the camera is currently looking at.
	Target() Vec3

	// MoveTo starts a linear move of the camera's position and look-at
	// target toward the given values, over the given duration. Finished is
	// polled by the CameraMove/HyFly commands.
	MoveTo(pos, target Vec3, duration float32)

	// Finished reports whether the most recently started MoveTo has
	// completed.
	Finished() bool

	// SetImmediate snaps the camera to an exact configuration (CameraSet):
	// yaw/pitch rotation in degrees plus an explicit world position.
	SetImmediate(yRot, xRot float32, pos Vec3)

	// ResetDefault restores the camera to the scene's default framing
	// (CameraDefault).
	ResetDefault(unk int32)
}

// GlobalState is the opaque, game-owned store threaded through the VM.
// The VM calls Tick once per frame, before decoding; beyond that it's
// free-for-all state that commands read and mutate through whatever
// game-specific API GlobalState exposes on top of this interface.
type GlobalState interface {
	// Tick advances whatever time-based bookkeeping GlobalState owns
	// (quest timers, buffs, ...) by deltaSec.
	Tick(deltaSec float32)
}

// InputPort lets commands enable or disable player input globally
// (RoleInput at the party level, as opposed to a single role).
type InputPort interface {
	SetEnabled(enabled bool)
}

// AssetPort is a narrow port for the handful of commands that just need to
// know an asset exists rather than load its bytes (the VM never parses
// models, textures, or audio itself).
type AssetPort interface {
	Exists(name string) bool
}
