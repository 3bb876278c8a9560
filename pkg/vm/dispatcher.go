/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"log/slog"

	"github.com/opengb/scenevm/pkg/errs"
	"github.com/opengb/scenevm/pkg/scebin"
)

// aliasBit is set on an opcode to mark "argument comes from an
// indirect/variable slot" in the original source format. This VM layer
// doesn't do symbol lookup at dispatch time, so X and X|aliasBit always
// decode to the same command (§4.D, §8 "Alias equivalence").
const aliasBit = 0x10000

// dispatch decodes exactly one opcode from frame (via a Cursor positioned
// at its current pc) and returns the Command it produces, advancing pc by
// however many bytes the opcode and its arguments occupied. Panics with
// *errs.UnknownOpcode, after rewinding pc by 4 bytes, if the opcode isn't
// in the table.
func dispatch(ec *ExecutionContext, frame *ProcFrame) Command {
	c := scebin.NewCursor(frame.inst, frame.pc, frame.procID)
	start := c.Offset
	opcode := c.I32()
	code := opcode &^ aliasBit

	cmd := decodeByCode(c, code, frame.procID)
	if cmd == nil {
		frame.JumpTo(uint32(c.Offset))
		frame.Putback(c.Offset - start)
		slog.Error("unknown opcode", "code", code, "proc_id", frame.procID, "offset", frame.pc)
		panic(errs.NewUnknownOpcode(code, frame.procID, frame.pc))
	}

	frame.JumpTo(uint32(c.Offset))
	return cmd
}

// decodeByCode reads code's declared arguments (in source-declaration
// order, per §4.A) from c and returns the bound command. Returns nil for
// an unrecognized code -- decodeByCode never itself panics with
// UnknownOpcode, so dispatch can rewind pc before raising it.
func decodeByCode(c *scebin.Cursor, code int32, procID uint32) Command {
	switch code {
	case 1:
		return &cmdIdle{length: c.F32()}
	case 2:
		return &cmdSetRunMode{mode: c.I32()}
	case 3:
		return &cmdGoto{offset: c.U32()}
	case 5:
		return &cmdFop{op: c.I32()}
	case 6:
		return &cmdCompare{slot: c.I16(), value: c.I32(), cmp: cmpGt}
	case 7:
		return &cmdCompare{slot: c.I16(), value: c.I32(), cmp: cmpLs}
	case 8:
		return &cmdCompare{slot: c.I16(), value: c.I32(), cmp: cmpEq}
	case 9:
		return &cmdCompare{slot: c.I16(), value: c.I32(), cmp: cmpNeq}
	case 10:
		return &cmdCompare{slot: c.I16(), value: c.I32(), cmp: cmpGeq}
	case 11:
		return &cmdCompare{slot: c.I16(), value: c.I32(), cmp: cmpLeq}
	case 12:
		return &cmdTestGoto{offset: c.U32()}
	case 13:
		return &cmdLet{slot: c.I16(), value: c.I32()}
	case 16:
		return &cmdCall{procID: c.U32()}
	case 17:
		return &cmdRnd{slot: c.I16(), upper: c.I32()}
	case 20:
		return &cmdRolePathTo{role: c.I32(), x: c.I32(), y: c.I32(), unused: c.I32()}
	case 21:
		return &cmdRoleSetPos{role: c.I32(), x: c.I32(), y: c.I32()}
	case 22:
		return &cmdRoleShowAction{role: c.I32(), action: c.String(), repeatMode: c.I32()}
	case 23, 210:
		return &cmdRoleSetFace{role: c.I32(), dir: c.I32()}
	case 24:
		return &cmdRoleTurnFace{role: c.I32(), deg: c.F32()}
	case 27:
		return &cmdRoleInput{enable: c.I32()}
	case 28:
		return &cmdRoleActive{role: c.I32(), active: c.I32()}
	case 32:
		c.F32()
		c.F32()
		c.I32()
		return &cmdNop{}
	case 33:
		c.F32()
		c.F32()
		c.F32()
		c.I32()
		return &cmdNop{}
	case 34:
		return &cmdCameraMove{px: c.F32(), py: c.F32(), pz: c.F32(), u1: c.F32(), u2: c.F32()}
	case 35:
		c.F32()
		c.F32()
		c.F32()
		c.I32()
		return &cmdNop{}
	case 36:
		return &cmdCameraSet{yRot: c.F32(), xRot: c.F32(), unk: c.F32(), x: c.F32(), y: c.F32(), z: c.F32()}
	case 37:
		return &cmdCameraDefault{unk: c.I32()}
	case 46:
		c.I32()
		c.I32()
		return &cmdNop{}
	case 62:
		return &cmdDlg{text: c.String()}
	case 63:
		return &cmdLoadScene{name: c.String(), sub: c.String()}
	case 65:
		return &cmdDlgSel{options: c.List()}
	case 66:
		return &cmdGetDlgSel{slot: c.I16()}
	case 67:
		c.I32()
		c.String()
		c.I32()
		return &cmdNop{}
	case 68:
		c.String()
		return &cmdNop{}
	case 69, 70:
		return &cmdNop{}
	case 71:
		c.I32()
		return &cmdNop{}
	case 72:
		c.I32()
		c.I32()
		return &cmdNop{}
	case 78:
		return &cmdHaveItem{itemID: c.I32()}
	case 79:
		return &cmdPlaySound{name: c.String(), repeat: c.I32()}
	case 85:
		return &cmdObjectActive{obj: c.I32(), active: c.I32()}
	case 86:
		c.String()
		c.I32()
		return &cmdNop{}
	case 87:
		c.I32()
		return &cmdNop{}
	case 88:
		c.I32()
		return &cmdNop{}
	case 89:
		return &cmdHyFly{px: c.F32(), py: c.F32(), pz: c.F32()}
	case 90:
		c.I32()
		c.F32()
		c.F32()
		c.F32()
		c.F32()
		return &cmdNop{}
	case 104:
		return &cmdNop{}
	case 108:
		return &cmdGetAppr{slot: c.I16()}
	case 115:
		c.String()
		return &cmdNop{}
	case 116:
		c.I32()
		c.String()
		return &cmdNop{}
	case 118:
		c.F32()
		c.F32()
		return &cmdNop{}
	case 124:
		c.I32()
		return &cmdNop{}
	case 133:
		return &cmdMusic{name: c.String(), unk: c.I32()}
	case 134:
		return &cmdStopMusic{}
	case 142:
		c.F32()
		c.F32()
		c.F32()
		return &cmdNop{}
	case 143:
		c.I32()
		return &cmdNop{}
	case 148:
		c.I32()
		return &cmdNop{}
	case 150:
		c.I32()
		c.String()
		return &cmdNop{}
	case 201:
		return &cmdRolePathOut{role: c.I32(), x: c.I32(), y: c.I32(), unused: c.I32()}
	case 202:
		c.I32()
		c.I32()
		return &cmdNop{}
	case 204:
		return &cmdRoleCtrl{role: c.I32()}
	case 207:
		return &cmdRoleActAutoStand{role: c.I32(), autoIdle: c.I32()}
	case 208:
		return &cmdRoleMoveBack{role: c.I32(), speed: c.F32()}
	case 209:
		return &cmdRoleFaceRole{role: c.I32(), otherRole: c.I32()}
	case 211, 212:
		return &cmdNop{}
	case 214:
		return &cmdRoleMoveTo{role: c.I32(), x: c.I32(), y: c.I32(), unused: c.I32()}
	case 221:
		c.I32()
		return &cmdNop{}
	case 250:
		c.I32()
		return &cmdNop{}
	default:
		return nil
	}
}
