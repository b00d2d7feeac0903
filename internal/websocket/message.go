package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/zodiac-catalog/internal/domain"
)

type MessageType string

const (
	// Server to Client
	MessageTypeConnected        MessageType = "connected"
	MessageTypeCharacterCreated MessageType = MessageType(domain.EventCharacterCreated)
	MessageTypeCharacterUpdated MessageType = MessageType(domain.EventCharacterUpdated)
	MessageTypeCharacterDeleted MessageType = MessageType(domain.EventCharacterDeleted)
	MessageTypeCharactersSeeded MessageType = MessageType(domain.EventCharactersSeeded)
	MessageTypeError            MessageType = "error"

	// Client to Server
	MessageTypePing MessageType = "ping"
	MessageTypePong MessageType = "pong"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Seq       int64           `json:"seq,omitempty"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	msg := &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
	}
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Payload = payloadBytes
	}
	return msg, nil
}

// CharacterPayload accompanies every character event. Character is absent
// for deletes and seeds.
type CharacterPayload struct {
	ID        string            `json:"id,omitempty"`
	Character *domain.Character `json:"character,omitempty"`
}

type ConnectedPayload struct {
	Clients int `json:"clients"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEventMessage converts a store event into its wire form.
func NewEventMessage(event domain.CharacterEvent) (*Message, error) {
	var payload interface{}
	if event.ID != "" || event.Character != nil {
		payload = CharacterPayload{ID: event.ID, Character: event.Character}
	}
	return NewMessage(MessageType(event.Type), payload)
}
