/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  Error
		want int
	}{
		{"DecodeError", NewDecodeError(1, 0, "truncated"), StatusCodeDecodeError},
		{"ProcMissing", NewProcMissing(7), StatusCodeRuntimeError},
		{"UnknownOpcode", NewUnknownOpcode(999, 1, 0), StatusCodeRuntimeError},
		{"HostError", NewHostError("play_sound", errors.New("no audio device")), StatusCodeRuntimeError},
		{"ToolError", NewToolError("oops"), StatusCodeToolError},
		{"BadUsage", NewBadUsage("bad args"), StatusCodeBadUsage},
		{"ICE", NewICE("invariant violated"), StatusCodeICE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.ExitCode())
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestHostErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewHostError("request_path", cause)
	assert.ErrorIs(t, err, cause)
}

func TestRecover(t *testing.T) {
	assert.Nil(t, Recover(nil))

	wrapped := Recover(NewProcMissing(3))
	assert.Equal(t, StatusCodeRuntimeError, wrapped.ExitCode())

	iced := Recover("a non-Error panic value")
	assert.Equal(t, StatusCodeICE, iced.ExitCode())
}
