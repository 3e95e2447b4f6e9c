// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package solver

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jimberry1/sudoku/services/solver/engine"
	"github.com/jimberry1/sudoku/services/solver/puzzle"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSSolveRequest is the client's solve message on the stream socket.
type WSSolveRequest struct {
	Puzzle string `json:"puzzle"`
}

// WSMessage is one server frame on the stream socket.
//
// Type is one of "session", "step", "result", "error". Step frames
// carry the transition name, history depth, and the grid after the
// transition; the final result frame carries the terminal outcome.
type WSMessage struct {
	Type       string `json:"type"`
	SessionID  string `json:"session_id,omitempty"`
	Transition string `json:"transition,omitempty"`
	Depth      int    `json:"depth,omitempty"`
	Grid       string `json:"grid,omitempty"`
	Complete   *bool  `json:"complete,omitempty"`
	Solution   string `json:"solution,omitempty"`
	Error      string `json:"error,omitempty"`
}

func sendJSON(ws *websocket.Conn, v interface{}) error {
	err := ws.WriteJSON(v)
	if err != nil {
		slog.Warn("failed to write websocket JSON", "error", err)
	}
	return err
}

// HandleSolveStream handles GET /v1/sudoku/solve/stream.
//
// Description:
//
//	Upgrades to a WebSocket, announces a session ID, then reads solve
//	requests in a loop. Each request is solved with the cache bypassed
//	so every driver transition is streamed as a "step" frame, followed
//	by one "result" frame. Parse failures produce an "error" frame and
//	keep the connection open.
//
// The engine runs on the handler goroutine and the progress callback
// writes frames directly, so all socket writes come from one goroutine.
func (h *Handlers) HandleSolveStream(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("failed to upgrade websocket", "error", err)
		return
	}
	defer ws.Close()

	sessionID := uuid.New().String()
	slog.Info("solve stream connected", "session_id", sessionID)

	if err := sendJSON(ws, WSMessage{Type: "session", SessionID: sessionID}); err != nil {
		return
	}

	for {
		var req WSSolveRequest
		if err := ws.ReadJSON(&req); err != nil {
			slog.Info("solve stream disconnected", "session_id", sessionID, "error", err.Error())
			return
		}

		start, err := puzzle.Parse(req.Puzzle)
		if err != nil {
			if sendJSON(ws, WSMessage{Type: "error", Error: err.Error()}) != nil {
				return
			}
			continue
		}

		writeFailed := false
		progress := func(step engine.Step) {
			if writeFailed {
				return
			}
			msg := WSMessage{
				Type:       "step",
				Transition: step.Transition.String(),
				Depth:      step.Depth,
				Grid:       puzzle.Format(step.Grid),
			}
			if sendJSON(ws, msg) != nil {
				writeFailed = true
			}
		}

		outcome, err := h.svc.SolveStream(c.Request.Context(), start, progress)
		if err != nil {
			if sendJSON(ws, WSMessage{Type: "error", Error: err.Error()}) != nil {
				return
			}
			continue
		}
		if writeFailed {
			return
		}

		complete := outcome.Result.Complete
		msg := WSMessage{Type: "result", Complete: &complete}
		if complete {
			msg.Solution = puzzle.Format(outcome.Result.Grid)
		}
		if sendJSON(ws, msg) != nil {
			return
		}
	}
}
