package websocket

import "github.com/google/uuid"

type SocketMessageType int

const (
	Welcome SocketMessageType = iota
	Update
)

// SocketMessage is a single payload pushed to connected activity stream
// clients. A message with a Target is delivered only to the client with
// the matching ID; all other messages are broadcast.
type SocketMessage struct {
	Title  string                 `json:"title"`
	Body   map[string]interface{} `json:"arguments"`
	Type   SocketMessageType      `json:"type"`
	Target *uuid.UUID             `json:"-"`
}
