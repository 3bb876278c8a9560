/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package scenetest

import (
	"fmt"
	"os"
	"path"
	"regexp"

	"github.com/pelletier/go-toml/v2"

	"github.com/opengb/scenevm/pkg/demohost"
	"github.com/opengb/scenevm/pkg/errs"
	"github.com/opengb/scenevm/pkg/romutil"
	"github.com/opengb/scenevm/pkg/scebin"
	"github.com/opengb/scenevm/pkg/vm"
)

// config mirrors a scene test case's TOML file: which fixture to run and a
// sequence of steps to drive it through.
type config struct {
	EntryProc string `toml:"entry_proc"`
	Steps     []step `toml:"step"`
}

// step mirrors a single simulated frame (or a host interaction followed by
// a frame) in a scene test case.
type step struct {
	// DeltaSec is the frame time passed to VMState.Step. Defaults to 0.1
	// when unset.
	DeltaSec float32

	// DismissDialog, if true, is applied (via demohost.Host.Dismiss)
	// before the Step call, simulating the player acknowledging a Dlg.
	DismissDialog bool

	// SelectOption, if set, is applied (via demohost.Host.Select) before
	// the Step call, simulating a DlgSel choice.
	SelectOption *int `toml:"select_option"`

	// ExpectLocals asserts local-variable values in the top frame after
	// this step (only meaningful while the procedure that set them is
	// still on the stack -- check within the same step it was written, or
	// thread the value out via dlgsel/appearance for cross-frame checks).
	ExpectLocals map[string]int32 `toml:"expect_locals"`

	// ExpectDone asserts VMState.Step's done return value.
	ExpectDone *bool `toml:"expect_done"`
}

// Fixture bundles everything ExecuteSuite needs to run a scene test case's
// EntryProc: the bytecode plus the host it should run against. Tests build
// one with scenetest.NewBuilder and demohost.NewHost, registering roles
// and items the fixture's bytecode expects.
type Fixture struct {
	Sce  *scebin.SceFile
	Host *demohost.Host
}

// FixtureProvider resolves a test case's declared name to a Fixture. Scene
// test cases don't embed their own bytecode in TOML (SceFile has no
// human-authored source form); the suite's caller supplies fixtures built
// in Go.
type FixtureProvider func(name string) (*Fixture, bool)

// ExecuteSuite walks suitePath for `*.scenetest.toml` files and runs each
// one, in the style of the `dev test` command's own suite runner.
func ExecuteSuite(suitePath string, fixtures FixtureProvider) errs.Error {
	return romutil.ForEachMatchingFileRecursive(suitePath, regexp.MustCompile(`\.scenetest\.toml$`),
		func(configPath string) errs.Error {
			return runCase(configPath, fixtures)
		})
}

func runCase(configPath string, fixtures FixtureProvider) errs.Error {
	name := path.Base(path.Dir(configPath))

	conf, err := readConfig(configPath)
	if err != nil {
		return err
	}

	fixture, ok := fixtures(name)
	if !ok {
		return errs.NewToolError("scene test %v: no fixture registered for %v", configPath, name)
	}

	vmState := vm.New(fixture.Sce, fixture.Host, fixture.Host, fixture.Host, 1)
	if !vmState.TryCallProcByName(conf.EntryProc) {
		return errs.NewToolError("scene test %v: entry procedure %v not found", configPath, conf.EntryProc)
	}

	for i, st := range conf.Steps {
		if st.DismissDialog {
			fixture.Host.Dismiss()
		}
		if st.SelectOption != nil {
			fixture.Host.Select(*st.SelectOption)
		}

		delta := st.DeltaSec
		if delta == 0 {
			delta = 0.1
		}

		_, done := vmState.Step(fixture.Host, delta)

		if st.ExpectDone != nil && done != *st.ExpectDone {
			return errs.NewToolError("scene test %v, step %v: expected done=%v, got %v", configPath, i, *st.ExpectDone, done)
		}

		for slotName, want := range st.ExpectLocals {
			var slot int16
			if _, err := fmt.Sscanf(slotName, "%d", &slot); err != nil {
				return errs.NewToolError("scene test %v, step %v: bad local slot name %q", configPath, i, slotName)
			}
			frame, ok := vmState.Exec().Current()
			if !ok {
				return errs.NewToolError("scene test %v, step %v: no active frame to check local %v", configPath, i, slot)
			}
			got, _ := frame.GetLocal(slot)
			if got != want {
				return errs.NewToolError("scene test %v, step %v: expected local[%v] == %v, got %v", configPath, i, slot, want, got)
			}
		}
	}

	fmt.Printf("Scene test passed: %v.\n", name)
	return nil
}

func readConfig(p string) (*config, errs.Error) {
	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, errs.NewToolError("reading %v: %v", p, err)
	}

	conf := &config{}
	if err := toml.Unmarshal(raw, conf); err != nil {
		return nil, errs.NewToolError("parsing %v: %v", p, err)
	}
	return conf, nil
}
