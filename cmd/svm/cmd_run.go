/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opengb/scenevm/pkg/demohost"
	"github.com/opengb/scenevm/pkg/errs"
	"github.com/opengb/scenevm/pkg/host"
	"github.com/opengb/scenevm/pkg/romutil"
	"github.com/opengb/scenevm/pkg/scebin"
	"github.com/opengb/scenevm/pkg/vm"
)

// runEntryProc is the value of the --proc flag.
var runEntryProc string

// runInteractive is the value of the --interactive flag.
var runInteractive bool

// runDelta is the value of the --delta flag.
var runDelta float32

// runSteps is the value of the --steps flag (ignored in --interactive mode).
var runSteps int

// runSeed is the value of the --seed flag.
var runSeed int64

var runCmd = &cobra.Command{
	Use:   "run <sce-file>",
	Short: "Runs a compiled scene against the reference host",
	Long: `Runs a compiled scene against an in-memory reference host, printing a
trace of every step to stdout. With --interactive, each line read from
stdin advances one frame (a float gives that frame's delta_sec, a blank
line uses --delta); without it, the VM is stepped --steps times at a fixed
--delta.`,
	Args: cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		defer recoverVMPanic()

		sce := loadSceExitingOnError(args[0])

		hub := demohost.NewHub()
		h := demohost.NewHost(hub)
		h.AddRole(1, "player", host.Vec3{})

		vmState := vm.New(sce, h, h, h, runSeed)
		if !vmState.TryCallProcByName(runEntryProc) {
			reportAndExit(errs.NewBadUsage("no procedure named %q in %v", runEntryProc, args[0]))
		}

		sink, clock := traceSinkAndClock()
		runLoop(vmState, h, sink, clock)

		reportAndExit(nil)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runEntryProc, "proc", "p", "main", "entry procedure name to start execution at")
	runCmd.Flags().BoolVarP(&runInteractive, "interactive", "i", false, "single-step from stdin instead of running a fixed number of frames")
	runCmd.Flags().Float32VarP(&runDelta, "delta", "d", 0.1, "frame delta_sec (fixed mode) or default (interactive mode)")
	runCmd.Flags().IntVarP(&runSteps, "steps", "s", 100, "number of frames to run (fixed mode only)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 1, "seed for the VM's Rnd opcode RNG")
}

func traceSinkAndClock() (romutil.TraceSink, romutil.FrameClock) {
	if runInteractive {
		return romutil.StdTraceSinkAndClock(runDelta)
	}
	return romutil.NewWriterTraceSink(os.Stdout), romutil.NewFixedFrameClock(runDelta, runSteps)
}

func runLoop(vmState *vm.VMState, host *demohost.Host, sink romutil.TraceSink, clock romutil.FrameClock) {
	for frame := 0; ; frame++ {
		delta, ok := clock.NextDelta()
		if !ok {
			sink.Say(fmt.Sprintf("frame %v: clock exhausted, stopping\n", frame))
			sink.Flush()
			return
		}

		successor, done := vmState.Step(host, delta)
		sink.Say(fmt.Sprintf("frame %v: delta=%.3f done=%v", frame, delta, done))
		if successor != nil {
			sink.Say(fmt.Sprintf(" successor=%v/%v", successor.Name, successor.Sub))
		}
		sink.Say("\n")
		sink.Flush()

		if done {
			return
		}
	}
}

func loadSceExitingOnError(path string) *scebin.SceFile {
	f, err := os.Open(path)
	if err != nil {
		reportAndExit(errs.NewToolError("opening %v: %v", path, err))
	}
	defer f.Close()

	sce, decErr := scebin.Load(f)
	reportAndExitOnError(decErr)
	return sce
}
