package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, 8),
		userID: uuid.New(),
	}
}

func runHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func receiveEvent(t *testing.T, c *Client) *Event {
	t.Helper()
	select {
	case data := <-c.send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		return &event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestHub_BroadcastReachesTeamSubscribers(t *testing.T) {
	hub := runHub(t)
	teamID := uuid.New()
	playerID := uuid.New()

	subscriber := newTestClient(hub)
	bystander := newTestClient(hub)
	hub.register <- subscriber
	hub.register <- bystander
	hub.subscribe <- &subscription{client: subscriber, teamID: teamID, join: true}
	hub.subscribe <- &subscription{client: bystander, teamID: uuid.New(), join: true}

	attrs := domain.DefaultAttributeSet(nil)
	attrs.Shooting = 57
	hub.NotifyAttributesUpdated(teamID, playerID, attrs)

	event := receiveEvent(t, subscriber)
	assert.Equal(t, EventTypeAttributesUpdated, event.Type)
	assert.Equal(t, teamID, event.TeamID)
	assert.Equal(t, playerID, event.PlayerID)
	require.NotNil(t, event.Attributes)
	assert.Equal(t, 57, event.Attributes.Shooting)

	select {
	case <-bystander.send:
		t.Fatal("client subscribed to another team received the event")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	hub := runHub(t)
	teamID := uuid.New()

	client := newTestClient(hub)
	hub.register <- client
	hub.subscribe <- &subscription{client: client, teamID: teamID, join: true}

	hub.NotifyAttributesUpdated(teamID, uuid.New(), domain.DefaultAttributeSet(nil))
	receiveEvent(t, client)

	hub.subscribe <- &subscription{client: client, teamID: teamID, join: false}
	hub.NotifyAttributesUpdated(teamID, uuid.New(), domain.DefaultAttributeSet(nil))

	select {
	case <-client.send:
		t.Fatal("unsubscribed client received an event")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_UnregisterRemovesSubscriptions(t *testing.T) {
	hub := runHub(t)
	teamID := uuid.New()

	client := newTestClient(hub)
	hub.register <- client
	hub.subscribe <- &subscription{client: client, teamID: teamID, join: true}
	hub.unregister <- client

	// Delivery to a removed client must not block or panic.
	hub.NotifyAttributesUpdated(teamID, uuid.New(), domain.DefaultAttributeSet(nil))
	time.Sleep(50 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	assert.Empty(t, hub.clients)
	assert.Empty(t, hub.teams[teamID])
}

func TestHub_NotifyNeverBlocksWhenBufferFull(t *testing.T) {
	// Not running the hub loop, so the buffer fills up and overflow must
	// be dropped without blocking the caller.
	hub := NewHub()
	teamID := uuid.New()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			hub.NotifyAttributesUpdated(teamID, uuid.New(), domain.DefaultAttributeSet(nil))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("NotifyAttributesUpdated blocked on a full buffer")
	}
}
