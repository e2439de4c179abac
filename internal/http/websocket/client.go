package websocket

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type socketClient struct {
	id     *uuid.UUID
	socket *websocket.Conn

	// gorilla permits one concurrent writer per connection
	writeMutex sync.Mutex
}

func (client *socketClient) SendMessage(message *SocketMessage) error {
	client.writeMutex.Lock()
	defer client.writeMutex.Unlock()

	return client.socket.WriteJSON(message)
}

// DiscardReads consumes (and drops) incoming frames so that control
// messages like pings and the close handshake are handled. Returns once
// the connection errors or closes.
func (client *socketClient) DiscardReads() error {
	for {
		if _, _, err := client.socket.ReadMessage(); err != nil {
			return err
		}
	}
}

func (client *socketClient) Close() error {
	return client.socket.Close()
}
