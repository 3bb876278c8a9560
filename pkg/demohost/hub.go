/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package demohost

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub fans VM trace events out to every connected HUD viewer over a
// websocket, as local debugging tooling (see SPEC_FULL.md's carve-out of
// this from the VM's own "no network replication" non-goal -- the VM
// itself knows nothing about Hub; it's wired up purely by demohost and
// cmd/svm's `serve` subcommand).
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*hubClient
}

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

// event is the wire shape pushed to every HUD viewer.
type event struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload,omitempty"`
}

// NewHub creates an empty Hub, ready to accept connections via ServeHTTP.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// This is a local debugging aid, not a public-facing service;
			// allow any origin rather than impose a same-origin policy
			// that would need awkward dev-server configuration to loosen.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*hubClient),
	}
}

// ServeHTTP upgrades the request to a websocket connection and registers
// it as a HUD viewer until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("demohost: websocket upgrade failed", "error", err)
		return
	}

	sessionID := uuid.NewString()
	client := &hubClient{conn: conn, send: make(chan []byte, 16)}

	h.mu.Lock()
	h.clients[sessionID] = client
	h.mu.Unlock()

	slog.Info("demohost: HUD viewer connected", "session_id", sessionID)

	go h.writePump(sessionID, client)
	h.readPump(sessionID, client)
}

func (h *Hub) readPump(sessionID string, client *hubClient) {
	defer h.disconnect(sessionID, client)
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(sessionID string, client *hubClient) {
	for msg := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			slog.Warn("demohost: failed writing to HUD viewer", "session_id", sessionID, "error", err)
			return
		}
	}
}

func (h *Hub) disconnect(sessionID string, client *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[sessionID]; !ok {
		return
	}
	delete(h.clients, sessionID)
	close(client.send)
	client.conn.Close()
	slog.Info("demohost: HUD viewer disconnected", "session_id", sessionID)
}

// Broadcast encodes kind/payload as JSON and pushes it to every connected
// HUD viewer. Slow viewers are dropped rather than allowed to back-pressure
// the VM's frame loop.
func (h *Hub) Broadcast(kind string, payload any) error {
	msg, err := json.Marshal(event{Kind: kind, Payload: payload})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		select {
		case client.send <- msg:
		default:
			slog.Warn("demohost: dropping HUD viewer, send buffer full", "session_id", id)
			go h.disconnect(id, client)
		}
	}
	return nil
}
