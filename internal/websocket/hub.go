package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/dom/zodiac-catalog/internal/domain"
)

// Hub fans character events out to every connected client.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	seq        int64
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.stopped {
				h.mu.Unlock()
				client.Close()
				continue
			}
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()

			if msg, err := NewMessage(MessageTypeConnected, ConnectedPayload{Clients: count}); err == nil {
				client.Send(msg)
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.seq++
			msg.Seq = h.seq
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("ERROR [hub.broadcast]: %v", err)
				continue
			}

			h.mu.Lock()
			for client := range h.clients {
				if !client.trySend(data) {
					// slow consumer
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop closes every client connection and blocks until Run has returned.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

// Publish queues event for broadcast. It never blocks the caller; events
// are dropped when the hub is stopped or its queue is full.
func (h *Hub) Publish(event domain.CharacterEvent) {
	msg, err := NewEventMessage(event)
	if err != nil {
		log.Printf("ERROR [hub.Publish]: %v", err)
		return
	}

	select {
	case <-h.done:
	case h.broadcast <- msg:
	default:
		log.Printf("hub: broadcast queue full, dropping %s", event.Type)
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

// Unregister safely unregisters a client, handling the case where the hub may be stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
