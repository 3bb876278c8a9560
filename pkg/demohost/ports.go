/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package demohost

// SetEnabled implements host.InputPort.
func (h *Host) SetEnabled(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcast("input", map[string]any{"enabled": enabled})
}

// assetSet, when non-nil, is consulted by Exists; a nil set makes every
// asset name report as present, which is the right default for a demo
// host with no real asset pipeline behind it.
type assetSet map[string]bool

// Exists implements host.AssetPort.
func (h *Host) Exists(name string) bool {
	if h.assets == nil {
		return true
	}
	return h.assets[name]
}
