package ws_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itbird-backend/ws"
)

func dialHub(t *testing.T, hub *ws.Hub) (*websocket.Conn, func()) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(hub.Handle))
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := ws.NewHub()
	go hub.Run()

	first, closeFirst := dialHub(t, hub)
	defer closeFirst()
	second, closeSecond := dialHub(t, hub)
	defer closeSecond()

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		2*time.Second, 10*time.Millisecond)

	hub.Broadcast(ws.Event{
		Type: ws.EventNewMessage,
		Data: map[string]interface{}{"chat_id": 7, "message": "привет"},
	})

	// Рассылка без адресации: кадр получают оба клиента
	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)

		var ev ws.Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		assert.Equal(t, ws.EventNewMessage, ev.Type)

		data, ok := ev.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "привет", data["message"])
	}
}

func TestHubUnregistersClosedClient(t *testing.T) {
	hub := ws.NewHub()
	go hub.Run()

	conn, closeConn := dialHub(t, hub)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		2*time.Second, 10*time.Millisecond)

	conn.Close()
	closeConn()

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		2*time.Second, 10*time.Millisecond)
}
