package ws_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bistrohq/bistro/pkg/ws"
)

func dialFeed(t *testing.T, hub *ws.Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, hub)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcast(t *testing.T) {
	hub := ws.NewHub()
	go hub.Run()

	conn := dialFeed(t, hub)

	// Registration races the broadcast; wait for the hub to see the client.
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		2*time.Second, 10*time.Millisecond)

	hub.Broadcast <- []byte(`{"paymentId":"pay-1"}`)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, kind)
	assert.JSONEq(t, `{"paymentId":"pay-1"}`, string(msg))
}

func TestHubBroadcast_MultipleClients(t *testing.T) {
	hub := ws.NewHub()
	go hub.Run()

	first := dialFeed(t, hub)
	second := dialFeed(t, hub)

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		2*time.Second, 10*time.Millisecond)

	hub.Broadcast <- []byte("order")

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, "order", string(msg))
	}
}
