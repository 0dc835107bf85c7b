package websocket

import (
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	"github.com/google/uuid"
)

// Message is an inbound client command.
type Message struct {
	Type   string    `json:"type"`
	TeamID uuid.UUID `json:"teamId"`
}

const (
	MessageTypeSubscribe   = "subscribe"
	MessageTypeUnsubscribe = "unsubscribe"
)

// Event is an outbound broadcast to a team's subscribers.
type Event struct {
	Type       string               `json:"type"`
	TeamID     uuid.UUID            `json:"teamId"`
	PlayerID   uuid.UUID            `json:"playerId"`
	Attributes *domain.AttributeSet `json:"attributes,omitempty"`
}

const EventTypeAttributesUpdated = "attributes_updated"
