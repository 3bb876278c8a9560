/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengb/scenevm/pkg/scebin"
)

func frameWithCode(code []byte) *ProcFrame {
	return &ProcFrame{procID: 1, inst: code, locals: make(map[int16]int32)}
}

// Dispatch completeness: pc advances by exactly 4 + Σ arg_widths (§8).
func TestDispatchAdvancesExactly(t *testing.T) {
	// Idle(length float32): 4 (opcode) + 4 (f32) = 8 bytes.
	code := make([]byte, 8)
	code[0] = 1 // opcode 1 = Idle
	f := frameWithCode(code)
	ec := NewExecutionContext(&scebin.SceFile{})

	cmd := dispatch(ec, f)
	require.NotNil(t, cmd)
	assert.Equal(t, 8, f.pc)
}

// Argument ordering: decoding [opcode][a][b] binds first param to a, second
// to b (§8), checked here against Gt's (slot, value) parameters.
func TestArgumentOrdering(t *testing.T) {
	code := []byte{
		6, 0, 0, 0, // opcode 6 = Gt
		9, 0, // slot = 9 (i16)
		7, 0, 0, 0, // value = 7 (i32)
	}
	f := frameWithCode(code)
	ec := NewExecutionContext(&scebin.SceFile{})

	cmd := dispatch(ec, f)
	cmp, ok := cmd.(*cmdCompare)
	require.True(t, ok)
	assert.Equal(t, int16(9), cmp.slot)
	assert.Equal(t, int32(7), cmp.value)
}

// Alias equivalence: X and X|0x10000 decode to the same command (§8).
func TestAliasEquivalence(t *testing.T) {
	plain := []byte{6, 0, 0, 0, 9, 0, 7, 0, 0, 0}
	aliased := []byte{6, 0, 1, 0, 9, 0, 7, 0, 0, 0} // high bit of opcode set

	ec := NewExecutionContext(&scebin.SceFile{})

	cmdPlain := dispatch(ec, frameWithCode(plain))
	cmdAliased := dispatch(ec, frameWithCode(aliased))

	assert.Equal(t, cmdPlain, cmdAliased)
}

// Unknown opcode: pc is rewound to its pre-dispatch value before the panic
// (§8 scenario 5).
func TestUnknownOpcodeRewindsPC(t *testing.T) {
	code := []byte{0xEF, 0xBE, 0xAD, 0xDE, 0, 0, 0, 0} // 0xDEADBEEF, plus junk
	f := frameWithCode(code)
	ec := NewExecutionContext(&scebin.SceFile{})

	assert.Panics(t, func() { dispatch(ec, f) })
	assert.Equal(t, 0, f.pc, "pc rewound to its pre-dispatch value")
}
