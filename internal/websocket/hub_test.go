package websocket_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dom/zodiac-catalog/internal/domain"
	"github.com/dom/zodiac-catalog/internal/websocket"
	"github.com/google/uuid"
	gorillaWS "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubServer(t *testing.T) (*websocket.Hub, string) {
	t.Helper()

	hub := websocket.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	upgrader := gorillaWS.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := websocket.NewClient(hub, conn)
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(server.Close)

	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *gorillaWS.Conn {
	t.Helper()
	conn, _, err := gorillaWS.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *gorillaWS.Conn) *websocket.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg websocket.Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return &msg
}

func TestHub_BroadcastsEvents(t *testing.T) {
	hub, url := newHubServer(t)

	first := dial(t, url)
	assert.Equal(t, websocket.MessageTypeConnected, readMessage(t, first).Type)
	second := dial(t, url)
	assert.Equal(t, websocket.MessageTypeConnected, readMessage(t, second).Type)

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	character := &domain.Character{ID: uuid.New(), Name: "Seiya", ZodiacSign: "Sagitario"}
	hub.Publish(domain.CharacterEvent{
		Type:      domain.EventCharacterCreated,
		ID:        character.ID.String(),
		Character: character,
	})
	hub.Publish(domain.CharacterEvent{Type: domain.EventCharacterDeleted, ID: character.ID.String()})

	for _, conn := range []*gorillaWS.Conn{first, second} {
		created := readMessage(t, conn)
		assert.Equal(t, websocket.MessageTypeCharacterCreated, created.Type)
		assert.Equal(t, int64(1), created.Seq)

		var payload websocket.CharacterPayload
		require.NoError(t, json.Unmarshal(created.Payload, &payload))
		assert.Equal(t, character.ID.String(), payload.ID)
		require.NotNil(t, payload.Character)
		assert.Equal(t, "Seiya", payload.Character.Name)

		deleted := readMessage(t, conn)
		assert.Equal(t, websocket.MessageTypeCharacterDeleted, deleted.Type)
		assert.Equal(t, int64(2), deleted.Seq)
	}
}

func TestHub_Ping(t *testing.T) {
	_, url := newHubServer(t)
	conn := dial(t, url)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(websocket.Message{Type: websocket.MessageTypePing}))
	assert.Equal(t, websocket.MessageTypePong, readMessage(t, conn).Type)

	require.NoError(t, conn.WriteMessage(gorillaWS.TextMessage, []byte("not json")))
	assert.Equal(t, websocket.MessageTypeError, readMessage(t, conn).Type)
}

func TestHub_ClientDisconnect(t *testing.T) {
	hub, url := newHubServer(t)
	conn := dial(t, url)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_StopClosesClients(t *testing.T) {
	hub, url := newHubServer(t)
	conn := dial(t, url)
	readMessage(t, conn)

	hub.Stop()
	hub.Stop()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	// Publishing after stop is a no-op.
	hub.Publish(domain.CharacterEvent{Type: domain.EventCharactersSeeded})
	assert.Equal(t, 0, hub.ClientCount())
}
