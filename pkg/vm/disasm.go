/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"fmt"
	"io"

	"github.com/opengb/scenevm/pkg/scebin"
)

// Disassemble writes a human-readable listing of every procedure in sce to
// w: one line per instruction, each prefixed by its byte offset within the
// procedure. Unlike dispatch, this never builds Commands and never panics on
// a malformed opcode -- it's a read-only development aid (the `svm disasm`
// subcommand), so a bad opcode just ends that procedure's listing early with
// a diagnostic line instead of taking down the whole tool.
func Disassemble(sce *scebin.SceFile, w io.Writer) {
	for _, h := range sce.ProcHeaders {
		p, ok := sce.Procs[h.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "proc %v %q (%v bytes):\n", h.ID, h.Name, len(p.Inst))
		disassembleProc(p.Inst, h.ID, w)
		fmt.Fprintln(w)
	}
}

func disassembleProc(inst []byte, procID uint32, w io.Writer) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(w, "    <decode error: %v>\n", r)
		}
	}()

	c := scebin.NewCursor(inst, 0, procID)
	for c.Offset < len(inst) {
		start := c.Offset
		opcode := c.I32()
		code := opcode &^ aliasBit
		aliased := opcode != code

		mnemonic, args := disasmOne(c, code)
		if mnemonic == "" {
			fmt.Fprintf(w, "    %6d: <unknown opcode %#x>\n", start, code)
			return
		}
		if aliased {
			mnemonic += "*"
		}
		fmt.Fprintf(w, "    %6d: %-16s %v\n", start, mnemonic, args)
	}
}

// disasmOne decodes one opcode's worth of arguments from c for display
// purposes, mirroring decodeByCode's argument layout. Returns an empty
// mnemonic for an opcode it doesn't recognize.
func disasmOne(c *scebin.Cursor, code int32) (string, []any) {
	switch code {
	case 1:
		return "Idle", []any{c.F32()}
	case 2:
		return "SetRunMode", []any{c.I32()}
	case 3:
		return "Goto", []any{c.U32()}
	case 5:
		return "Fop", []any{c.I32()}
	case 6:
		return "Gt", []any{c.I16(), c.I32()}
	case 7:
		return "Ls", []any{c.I16(), c.I32()}
	case 8:
		return "Eq", []any{c.I16(), c.I32()}
	case 9:
		return "Neq", []any{c.I16(), c.I32()}
	case 10:
		return "Geq", []any{c.I16(), c.I32()}
	case 11:
		return "Leq", []any{c.I16(), c.I32()}
	case 12:
		return "TestGoto", []any{c.U32()}
	case 13:
		return "Let", []any{c.I16(), c.I32()}
	case 16:
		return "Call", []any{c.U32()}
	case 17:
		return "Rnd", []any{c.I16(), c.I32()}
	case 20:
		return "RolePathTo", []any{c.I32(), c.I32(), c.I32(), c.I32()}
	case 21:
		return "RoleSetPos", []any{c.I32(), c.I32(), c.I32()}
	case 22:
		return "RoleShowAction", []any{c.I32(), c.String(), c.I32()}
	case 23, 210:
		return "RoleSetFace", []any{c.I32(), c.I32()}
	case 24:
		return "RoleTurnFace", []any{c.I32(), c.F32()}
	case 27:
		return "RoleInput", []any{c.I32()}
	case 28:
		return "RoleActive", []any{c.I32(), c.I32()}
	case 32:
		return "nop32", []any{c.F32(), c.F32(), c.I32()}
	case 33:
		return "nop33", []any{c.F32(), c.F32(), c.F32(), c.I32()}
	case 34:
		return "CameraMove", []any{c.F32(), c.F32(), c.F32(), c.F32(), c.F32()}
	case 35:
		return "nop35", []any{c.F32(), c.F32(), c.F32(), c.I32()}
	case 36:
		return "CameraSet", []any{c.F32(), c.F32(), c.F32(), c.F32(), c.F32(), c.F32()}
	case 37:
		return "CameraDefault", []any{c.I32()}
	case 46:
		return "nop46", []any{c.I32(), c.I32()}
	case 62:
		return "Dlg", []any{c.String()}
	case 63:
		return "LoadScene", []any{c.String(), c.String()}
	case 65:
		return "DlgSel", []any{c.List()}
	case 66:
		return "GetDlgSel", []any{c.I16()}
	case 67:
		return "nop67", []any{c.I32(), c.String(), c.I32()}
	case 68:
		return "nop68", []any{c.String()}
	case 69, 70:
		return "nop69_70", nil
	case 71:
		return "nop71", []any{c.I32()}
	case 72:
		return "nop72", []any{c.I32(), c.I32()}
	case 78:
		return "HaveItem", []any{c.I32()}
	case 79:
		return "PlaySound", []any{c.String(), c.I32()}
	case 85:
		return "ObjectActive", []any{c.I32(), c.I32()}
	case 86:
		return "nop86", []any{c.String(), c.I32()}
	case 87:
		return "nop87", []any{c.I32()}
	case 88:
		return "nop88", []any{c.I32()}
	case 89:
		return "HyFly", []any{c.F32(), c.F32(), c.F32()}
	case 90:
		return "nop90", []any{c.I32(), c.F32(), c.F32(), c.F32(), c.F32()}
	case 104:
		return "nop104", nil
	case 108:
		return "GetAppr", []any{c.I16()}
	case 115:
		return "nop115", []any{c.String()}
	case 116:
		return "nop116", []any{c.I32(), c.String()}
	case 118:
		return "nop118", []any{c.F32(), c.F32()}
	case 124:
		return "nop124", []any{c.I32()}
	case 133:
		return "Music", []any{c.String(), c.I32()}
	case 134:
		return "StopMusic", nil
	case 142:
		return "nop142", []any{c.F32(), c.F32(), c.F32()}
	case 143:
		return "nop143", []any{c.I32()}
	case 148:
		return "nop148", []any{c.I32()}
	case 150:
		return "nop150", []any{c.I32(), c.String()}
	case 201:
		return "RolePathOut", []any{c.I32(), c.I32(), c.I32(), c.I32()}
	case 202:
		return "nop202", []any{c.I32(), c.I32()}
	case 204:
		return "RoleCtrl", []any{c.I32()}
	case 207:
		return "RoleActAutoStand", []any{c.I32(), c.I32()}
	case 208:
		return "RoleMoveBack", []any{c.I32(), c.F32()}
	case 209:
		return "RoleFaceRole", []any{c.I32(), c.I32()}
	case 211, 212:
		return "nop211_212", nil
	case 214:
		return "RoleMoveTo", []any{c.I32(), c.I32(), c.I32(), c.I32()}
	case 221:
		return "nop221", []any{c.I32()}
	case 250:
		return "nop250", []any{c.I32()}
	default:
		return "", nil
	}
}
