package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"quizroom-service/internal/app"
)

// WSHandler serves room state over a websocket as an alternative to
// polling /state. It is strictly request/response: the client sends a
// message, the server replies, and nothing is ever pushed unsolicited.
// A single read-reply loop per connection keeps writes serialized.
type WSHandler struct {
	rooms    *app.RoomService
	upgrader websocket.Upgrader
}

func NewWSHandler(rooms *app.RoomService) *WSHandler {
	return &WSHandler{
		rooms: rooms,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and wires the connection into the room
// operations. A `name` query parameter makes it a player connection
// (joining the room on connect); without one it is a host connection that
// may also advance the game.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	roomCode := r.URL.Query().Get("roomCode")
	playerName := r.URL.Query().Get("name")
	if roomCode == "" {
		http.Error(w, "missing roomCode", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	if playerName != "" {
		if err := h.rooms.Join(ctx, roomCode, playerName); err != nil {
			// Reconnects land here: the room may have started or the name is
			// already taken by this same player. If the name still resolves
			// against the room, carry on.
			if _, stateErr := h.rooms.State(ctx, roomCode, playerName); stateErr != nil {
				h.sendError(conn, err.Error())
				return
			}
		}
	}
	h.sendState(ctx, conn, roomCode, playerName)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "state":
			h.sendState(ctx, conn, roomCode, playerName)
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid answer payload")
				continue
			}
			if playerName == "" {
				h.sendError(conn, "only players can answer")
				continue
			}
			if err := h.rooms.SubmitAnswer(ctx, roomCode, playerName, payload.Answer); err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			h.sendState(ctx, conn, roomCode, playerName)
		case "next":
			if playerName != "" {
				h.sendError(conn, "only the host can advance")
				continue
			}
			finished, err := h.rooms.NextStage(ctx, roomCode)
			if err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			if finished {
				_ = conn.WriteJSON(outboundMessage[struct{}]{Type: "finished"})
				continue
			}
			h.sendState(ctx, conn, roomCode, playerName)
		default:
			h.sendError(conn, "unsupported message type")
		}
	}
}

func (h *WSHandler) sendState(ctx context.Context, conn *websocket.Conn, roomCode, playerName string) {
	state, err := h.rooms.State(ctx, roomCode, playerName)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}
	_ = conn.WriteJSON(outboundMessage[any]{Type: "state", Payload: state})
}

func (h *WSHandler) sendError(conn *websocket.Conn, msg string) {
	_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: msg}})
}
