/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/opengb/scenevm/pkg/demohost"
	"github.com/opengb/scenevm/pkg/errs"
	"github.com/opengb/scenevm/pkg/host"
	"github.com/opengb/scenevm/pkg/vm"
)

// serveManifest is the TOML-configured shape of a `svm serve` run: which
// scene to load, where to start it, and how to listen for HUD viewers.
type serveManifest struct {
	SceFile   string  `toml:"sce_file"`
	EntryProc string  `toml:"entry_proc"`
	Addr      string  `toml:"addr"`
	Delta     float32 `toml:"delta"`
}

// serveManifestPath is the value of the --manifest flag.
var serveManifestPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves a compiled scene over a websocket for a HUD viewer",
	Long: `Loads a scene per a TOML manifest and runs it, broadcasting scene,
object, dialog, sound, music and input events to any connected HUD viewer
over a websocket at /ws. This is local debugging tooling, not a multiplayer or replication
server: one VM instance, pushed one-directionally to whoever is watching.`,

	Run: func(cmd *cobra.Command, args []string) {
		defer recoverVMPanic()

		manifest := loadManifestExitingOnError(serveManifestPath)
		sce := loadSceExitingOnError(manifest.SceFile)

		hub := demohost.NewHub()
		h := demohost.NewHost(hub)
		h.AddRole(1, "player", host.Vec3{})

		vmState := vm.New(sce, h, h, h, 1)
		if !vmState.TryCallProcByName(manifest.EntryProc) {
			reportAndExit(errs.NewBadUsage("no procedure named %q in %v", manifest.EntryProc, manifest.SceFile))
		}

		go driveScene(vmState, h, manifest.Delta)

		mux := http.NewServeMux()
		mux.HandleFunc("/ws", hub.ServeHTTP)

		slog.Info("svm serve: listening", "addr", manifest.Addr)
		if err := http.ListenAndServe(manifest.Addr, mux); err != nil {
			reportAndExit(errs.NewToolError("serving: %v", err))
		}
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveManifestPath, "manifest", "m", "svm-serve.toml", "path to the serve manifest")
}

// driveScene steps vmState forever at manifest.Delta, a fixed wall-clock
// frame rate, until the scene reports done. Runs on its own goroutine so
// ListenAndServe can own the main one.
func driveScene(vmState *vm.VMState, h *demohost.Host, delta float32) {
	if delta <= 0 {
		delta = 1.0 / 30
	}
	ticker := time.NewTicker(time.Duration(delta * float32(time.Second)))
	defer ticker.Stop()

	for range ticker.C {
		_, done := vmState.Step(h, delta)
		if done {
			slog.Info("svm serve: scene finished")
			return
		}
	}
}

func loadManifestExitingOnError(path string) *serveManifest {
	raw, err := os.ReadFile(path)
	if err != nil {
		reportAndExit(errs.NewToolError("reading manifest %v: %v", path, err))
	}

	m := &serveManifest{Addr: ":8080", Delta: 1.0 / 30}
	if err := toml.Unmarshal(raw, m); err != nil {
		reportAndExit(errs.NewToolError("parsing manifest %v: %v", path, err))
	}
	return m
}
