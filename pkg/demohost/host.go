/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// Package demohost is a reference implementation of the pkg/host port
// interfaces, backed by an in-memory scene graph. It exists so the `svm`
// CLI and pkg/scenetest's end-to-end suite have something concrete to run
// scenes against, and so `svm serve` has something to push HUD events over.
// A real game would provide its own SceneHost wired to its actual engine.
package demohost

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/opengb/scenevm/pkg/host"
)

// Host is an in-memory SceneHost plus GlobalState: it owns every role,
// the camera, and the party's global flags, and satisfies both
// host.SceneHost and host.GlobalState on the same value so a single Host
// can be handed to vm.New as the GlobalState and to VMState.Step as the
// SceneHost.
type Host struct {
	mu sync.Mutex

	roles   map[int32]*Role
	byName  map[string]int32
	camera  *Camera
	objects map[int32]bool
	items   map[int32]bool
	appr    int32

	activeScene, activeSub string
	dlg                    *dialogState
	assets                 assetSet

	hub *Hub
}

// SetAssets restricts Exists to the given set of known asset names. Without
// a call to SetAssets, Exists reports every name as present.
func (h *Host) SetAssets(names ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := make(assetSet, len(names))
	for _, n := range names {
		s[n] = true
	}
	h.assets = s
}

// NewHost creates an empty Host. hub may be nil; if non-nil, scene, object,
// dialog, sound, music and input changes are also broadcast to connected
// HUD viewers. Role and camera changes are not broadcast.
func NewHost(hub *Hub) *Host {
	return &Host{
		roles:   make(map[int32]*Role),
		byName:  make(map[string]int32),
		camera:  &Camera{},
		objects: make(map[int32]bool),
		items:   make(map[int32]bool),
		hub:     hub,
	}
}

// AddRole registers a role under id and name, starting at pos.
func (h *Host) AddRole(id int32, name string, pos host.Vec3) *Role {
	h.mu.Lock()
	defer h.mu.Unlock()
	r := &Role{id: id, name: name, pos: pos, active: true}
	h.roles[id] = r
	h.byName[name] = id
	return r
}

// GrantItem marks itemID as owned by the party, for HaveItem queries.
func (h *Host) GrantItem(itemID int32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items[itemID] = true
}

// SetAppearance sets the value CurrentAppearanceID reports.
func (h *Host) SetAppearance(id int32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.appr = id
}

//
// host.SceneHost
//

func (h *Host) Role(id int32) (host.RoleHandle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.roles[id]
	if !ok {
		return nil, fmt.Errorf("no role with id %v", id)
	}
	return r, nil
}

func (h *Host) RoleByName(name string) (host.RoleHandle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id, ok := h.byName[name]
	if !ok {
		return nil, fmt.Errorf("no role named %q", name)
	}
	return h.roles[id], nil
}

func (h *Host) NavToWorld(x, z int32) (host.Vec3, error) {
	// This reference host has no nav mesh of its own: nav coordinates
	// are treated as world coordinates one-to-one (identity mapping),
	// which is enough to drive pkg/scenetest's fixtures and the `svm`
	// CLI's interactive mode.
	return host.Vec3{X: float32(x), Y: 0, Z: float32(z)}, nil
}

func (h *Host) RequestPath(role host.RoleHandle, from, to host.Vec3) ([]host.Vec3, error) {
	// No pathfinding in this reference host: a direct one-waypoint path.
	return []host.Vec3{to}, nil
}

func (h *Host) Camera() host.CameraHandle {
	return h.camera
}

func (h *Host) SetActiveScene(name, sub string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.activeScene, h.activeSub = name, sub
	h.broadcast("scene", map[string]any{"name": name, "sub": sub})
	return nil
}

func (h *Host) SetObjectActive(id int32, active bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.objects[id] = active
	h.broadcast("object", map[string]any{"id": id, "active": active})
	return nil
}

func (h *Host) DialogShow(text string) func() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	d := &dialogState{text: text}
	h.dlg = d
	h.broadcast("dialog", map[string]any{"text": text})
	return func() bool {
		h.mu.Lock()
		defer h.mu.Unlock()
		return d.dismissed
	}
}

func (h *Host) DialogSelect(options []string) func() (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	d := &dialogState{options: options, selection: -1}
	h.dlg = d
	h.broadcast("dialog_select", map[string]any{"options": options})
	return func() (int, bool) {
		h.mu.Lock()
		defer h.mu.Unlock()
		if d.selection < 0 {
			return 0, false
		}
		return d.selection, true
	}
}

// Dismiss marks the current Dlg as acknowledged by the player. A real
// host wires this to HUD input; pkg/scenetest's suite runner and the tests
// call it directly. The `svm` CLI does not call it.
func (h *Host) Dismiss() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dlg != nil {
		h.dlg.dismissed = true
	}
}

// Select records the player's DlgSel choice. See Dismiss.
func (h *Host) Select(index int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dlg != nil {
		h.dlg.selection = index
	}
}

func (h *Host) PlaySound(name string, repeat bool) error {
	h.broadcast("sound", map[string]any{"name": name, "repeat": repeat})
	return nil
}

func (h *Host) PlayMusic(name string, flags int32) error {
	h.broadcast("music", map[string]any{"name": name, "flags": flags})
	return nil
}

func (h *Host) StopMusic() error {
	h.broadcast("music_stop", nil)
	return nil
}

func (h *Host) HasItem(itemID int32) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.items[itemID]
}

func (h *Host) CurrentAppearanceID() int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.appr
}

//
// host.GlobalState
//

// Tick advances the camera's in-flight move, if any. A real game's
// GlobalState would be a separate, much larger object (quest timers,
// buffs, party stats); folding camera interpolation into it here keeps
// this reference host to a single ticked value.
func (h *Host) Tick(deltaSec float32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.camera.tick(deltaSec)
}

func (h *Host) broadcast(kind string, payload any) {
	if h.hub == nil {
		return
	}
	if err := h.hub.Broadcast(kind, payload); err != nil {
		slog.Warn("demohost: failed to broadcast HUD event", "kind", kind, "error", err)
	}
}

type dialogState struct {
	text      string
	options   []string
	dismissed bool
	selection int
}
