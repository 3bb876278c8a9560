/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import "github.com/opengb/scenevm/pkg/host"

// cmdDlg implements opcode 62: show a narration/dialog box, finishing once
// the host reports it dismissed.
type cmdDlg struct {
	baseCommand
	text string

	poll func() bool
}

func (c *cmdDlg) Initialize(h host.SceneHost, _ *VMState) {
	c.poll = h.DialogShow(c.text)
}

func (c *cmdDlg) Tick(host.SceneHost, *VMState, float32) bool {
	if c.poll == nil {
		return true
	}
	return c.poll()
}
func (c *cmdDlg) Clone() Command { cp := *c; return &cp }

// cmdDlgSel implements opcode 65: show a multiple-choice prompt, stashing
// the chosen index into the top frame's dlgsel slot on completion for a
// subsequent GetDlgSel to read.
type cmdDlgSel struct {
	baseCommand
	options []string

	poll func() (int, bool)
}

func (c *cmdDlgSel) Initialize(h host.SceneHost, _ *VMState) {
	c.poll = h.DialogSelect(c.options)
}

func (c *cmdDlgSel) Tick(_ host.SceneHost, s *VMState, _ float32) bool {
	if c.poll == nil {
		return true
	}
	selected, done := c.poll()
	if !done {
		return false
	}
	if frame, ok := s.exec.Current(); ok {
		frame.SetDlgSel(int32(selected))
	}
	return true
}
func (c *cmdDlgSel) Clone() Command { cp := *c; return &cp }

// cmdGetDlgSel implements opcodes 66|65602: copy the frame's dlgsel slot
// into a local variable.
type cmdGetDlgSel struct {
	baseCommand
	slot int16
}

func (c *cmdGetDlgSel) Tick(_ host.SceneHost, s *VMState, _ float32) bool {
	if frame, ok := s.exec.Current(); ok {
		frame.SetLocal(c.slot, frame.GetDlgSel())
	}
	return true
}
func (c *cmdGetDlgSel) Clone() Command { cp := *c; return &cp }
