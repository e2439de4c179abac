package websocket_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/oxholm/drift/internal/http/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// received mirrors the wire shape of SocketMessage for client-side
// decoding.
type received struct {
	Title string                 `json:"title"`
	Body  map[string]interface{} `json:"arguments"`
	Type  int                    `json:"type"`
}

// startHub runs a hub and an HTTP server upgrading every request to a
// socket on it; both are torn down when the test completes.
func startHub(t *testing.T) (*websocket.SocketHub, string) {
	hub := websocket.New()
	hub.WithConnectionCallback(func() map[string]interface{} {
		return map[string]interface{}{"greeting": "hello"}
	})

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Start(ctx)
	t.Cleanup(cancel)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.UpgradeToSocket(w, r)
	}))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

// dial connects to the hub, retrying while its event loop spins up.
func dial(t *testing.T, wsURL string) *gorilla.Conn {
	var conn *gorilla.Conn
	require.Eventually(t, func() bool {
		c, _, err := gorilla.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			return false
		}

		conn = c
		return true
	}, 2*time.Second, 10*time.Millisecond, "failed to connect to socket hub")

	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *gorilla.Conn) received {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var message received
	require.NoError(t, conn.ReadJSON(&message))
	return message
}

func Test_NewConnection_ReceivesWelcomeWithConnectionPayload(t *testing.T) {
	t.Parallel()
	_, wsURL := startHub(t)
	conn := dial(t, wsURL)

	welcome := readMessage(t, conn)
	assert.Equal(t, "CONNECTION_ESTABLISHED", welcome.Title)
	assert.EqualValues(t, websocket.Welcome, welcome.Type)
	assert.Equal(t, "hello", welcome.Body["greeting"])
	assert.NotEmpty(t, welcome.Body["client"], "welcome must carry the client ID")
}

func Test_Send_BroadcastsToAllConnectedClients(t *testing.T) {
	t.Parallel()
	hub, wsURL := startHub(t)

	first := dial(t, wsURL)
	second := dial(t, wsURL)
	readMessage(t, first)
	readMessage(t, second)

	hub.Send(&websocket.SocketMessage{
		Title: "TRANSFER_UPDATE",
		Body:  map[string]interface{}{"arguments": "payload"},
		Type:  websocket.Update,
	})

	for _, conn := range []*gorilla.Conn{first, second} {
		update := readMessage(t, conn)
		assert.Equal(t, "TRANSFER_UPDATE", update.Title)
		assert.EqualValues(t, websocket.Update, update.Type)
		assert.Equal(t, "payload", update.Body["arguments"])
	}
}
