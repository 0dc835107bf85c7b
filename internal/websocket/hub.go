package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	"github.com/google/uuid"
)

// Hub fans committed attribute updates out to connected clients. Clients
// subscribe to the teams they care about; an update for a player reaches
// every subscriber of that player's team.
type Hub struct {
	clients    map[*Client]bool
	teams      map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	subscribe  chan *subscription
	broadcast  chan *Event
	stop       chan struct{}
	done       chan struct{}
	stopped    bool
	mu         sync.RWMutex
}

type subscription struct {
	client *Client
	teamID uuid.UUID
	join   bool
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		teams:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		subscribe:  make(chan *subscription),
		broadcast:  make(chan *Event, 64),
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
			h.teams = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					for _, members := range h.teams {
						delete(members, client)
					}
					client.Close()
				}
			}
			h.mu.Unlock()

		case sub := <-h.subscribe:
			h.mu.Lock()
			if !h.stopped {
				if sub.join {
					if h.teams[sub.teamID] == nil {
						h.teams[sub.teamID] = make(map[*Client]bool)
					}
					h.teams[sub.teamID][sub.client] = true
				} else if members, ok := h.teams[sub.teamID]; ok {
					delete(members, sub.client)
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.broadcastToTeam(event)
		}
	}
}

// Stop shuts the hub down and waits for Run to exit.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

// NotifyAttributesUpdated implements service.AttributeNotifier. It never
// blocks the caller: when the broadcast buffer is full the event is
// dropped, since a missed live update is recoverable by a normal read.
func (h *Hub) NotifyAttributesUpdated(teamID, playerID uuid.UUID, attributes domain.AttributeSet) {
	event := &Event{
		Type:       EventTypeAttributesUpdated,
		TeamID:     teamID,
		PlayerID:   playerID,
		Attributes: &attributes,
	}

	select {
	case h.broadcast <- event:
	default:
		log.Printf("ERROR [websocket.NotifyAttributesUpdated] broadcast buffer full, dropping update for player %s", playerID)
	}
}

func (h *Hub) broadcastToTeam(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ERROR [websocket.broadcastToTeam] failed to marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.teams[event.TeamID] {
		select {
		case client.send <- data:
		default:
			// Slow consumer; drop rather than stall the hub.
		}
	}
}
