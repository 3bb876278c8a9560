/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import "github.com/opengb/scenevm/pkg/host"

// Command is the uniform two-phase lifecycle every dispatched opcode
// produces (§4.E). Instantaneous commands return true from their first
// Tick; durative ones return false until whatever condition they're
// tracking holds.
//
// Commands carry only the data bound at decode time plus whatever progress
// state they accumulate between ticks -- they never re-decode bytecode, and
// they must be safe to copy (Clone) since the scheduler may want to retain
// an unmodified copy of a command alongside the one it's ticking.
type Command interface {
	// Initialize runs once, the first frame this command is dispatched,
	// before its first Tick. Most instantaneous commands do all their work
	// here and simply return true from Tick; most durative commands use
	// Initialize to kick off a host-side operation (start an animation,
	// request a path) that Tick then polls.
	Initialize(h host.SceneHost, s *VMState)

	// Tick runs one frame's worth of work and reports whether the command
	// has completed.
	Tick(h host.SceneHost, s *VMState, deltaSec float32) bool

	// Clone returns an independent copy of the command, safe to tick
	// without aliasing the original's progress state.
	Clone() Command
}

// baseCommand is embedded by commands whose Initialize is a no-op, so they
// need only implement Tick and Clone.
type baseCommand struct{}

func (baseCommand) Initialize(host.SceneHost, *VMState) {}
