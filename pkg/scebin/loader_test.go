/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package scebin

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengb/scenevm/pkg/errs"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	original := &SceFile{
		ProcHeaders: []ProcHeader{
			{ID: 1, Name: "main", Offset: 0},
			{ID: 2, Name: "greet", Offset: 8},
		},
		Procs: map[uint32]*Proc{
			1: {Inst: []byte{1, 2, 3, 4}},
			2: {Inst: []byte{5, 6}},
		},
	}

	var buf bytes.Buffer
	require.Nil(t, Save(&buf, original))

	loaded, err := Load(&buf)
	require.Nil(t, err)

	assert.Equal(t, original.ProcHeaders, loaded.ProcHeaders)
	assert.Equal(t, original.Procs[1].Inst, loaded.Procs[1].Inst)
	assert.Equal(t, original.Procs[2].Inst, loaded.Procs[2].Inst)
}

func TestLoadTruncatedFileIsToolError(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte{1, 0, 0})) // proc count truncated
	require.NotNil(t, err)
	assert.Equal(t, errs.StatusCodeToolError, err.ExitCode())
}
