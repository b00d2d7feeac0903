package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/dom/zodiac-catalog/internal/websocket"
	gorillaWS "github.com/gorilla/websocket"
)

// Watch subscribes to the server's change notifications and calls handle
// for every message until ctx is done or the connection drops.
func Watch(ctx context.Context, wsURL string, handle func(*websocket.Message)) error {
	dialer := *gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.WriteControl(gorillaWS.CloseMessage,
			gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		conn.Close()
	})
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("watch connection lost: %w", err)
		}

		var msg websocket.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("watch: ignoring malformed message: %v", err)
			continue
		}
		handle(&msg)
	}
}

// IsChangeEvent reports whether msg signals that the collection changed.
func IsChangeEvent(msg *websocket.Message) bool {
	switch msg.Type {
	case websocket.MessageTypeCharacterCreated,
		websocket.MessageTypeCharacterUpdated,
		websocket.MessageTypeCharacterDeleted,
		websocket.MessageTypeCharactersSeeded:
		return true
	default:
		return false
	}
}

// Watch refreshes the cache on every change notification from wsURL, and
// once on connect to pick up changes made before the subscription existed.
func (c *Cache) Watch(ctx context.Context, wsURL string) error {
	return Watch(ctx, wsURL, func(msg *websocket.Message) {
		if msg.Type == websocket.MessageTypeConnected || IsChangeEvent(msg) {
			c.Refresh()
		}
	})
}
