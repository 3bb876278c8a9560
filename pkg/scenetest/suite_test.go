/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package scenetest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengb/scenevm/pkg/demohost"
)

func writeCase(t *testing.T, dir, name, toml string) {
	t.Helper()
	caseDir := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(caseDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(caseDir, name+".scenetest.toml"), []byte(toml), 0o644))
}

func TestExecuteSuitePassingCase(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "let-and-check", `
entry_proc = "main"

[[step]]
expect_done = false

[step.expect_locals]
"0" = 42
`)

	fixtures := func(name string) (*Fixture, bool) {
		if name != "let-and-check" {
			return nil, false
		}
		// The frame is popped once its last instruction is decoded, so two
		// trailing Idles under Sequential mode keep it alive for the
		// expect_locals check.
		b := NewBuilder().SetRunMode(1).Let(0, 42).Idle(1.0).Idle(1.0)
		return &Fixture{Sce: SceFile(1, "main", b), Host: demohost.NewHost(nil)}, true
	}

	err := ExecuteSuite(dir, fixtures)
	assert.Nil(t, err)
}

func TestExecuteSuiteUnexpectedDoneFails(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "wrong-done", `
entry_proc = "main"

[[step]]
expect_done = false
`)

	fixtures := func(name string) (*Fixture, bool) {
		b := NewBuilder().Let(0, 1)
		return &Fixture{Sce: SceFile(1, "main", b), Host: demohost.NewHost(nil)}, true
	}

	err := ExecuteSuite(dir, fixtures)
	require.NotNil(t, err, "the fixture finishes in one step, contradicting expect_done=false")
}

func TestExecuteSuiteMissingFixtureFails(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "no-fixture", `
entry_proc = "main"
`)

	err := ExecuteSuite(dir, func(string) (*Fixture, bool) { return nil, false })
	require.NotNil(t, err)
}

func TestExecuteSuiteDialogSelectStep(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "dlgsel", `
entry_proc = "main"

[[step]]

[[step]]
select_option = 1

[[step]]

[step.expect_locals]
"5" = 1
`)

	fixtures := func(name string) (*Fixture, bool) {
		b := NewBuilder().
			SetRunMode(1).
			DlgSel("Yes", "No").
			GetDlgSel(5).
			Idle(1.0).
			Idle(1.0)
		return &Fixture{Sce: SceFile(1, "main", b), Host: demohost.NewHost(nil)}, true
	}

	err := ExecuteSuite(dir, fixtures)
	assert.Nil(t, err)
}
