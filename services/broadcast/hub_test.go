package broadcast

import "testing"

func newHubClient(h *Hub) *Client {
	c := &Client{hub: h, send: make(chan Message, sendBufferSize)}
	h.register(c)
	return c
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	a := newHubClient(hub)
	b := newHubClient(hub)

	hub.Broadcast(Message{Type: MessageTypeLiveDataChanged, Revision: "r1"})

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			if msg.Type != MessageTypeLiveDataChanged || msg.Revision != "r1" {
				t.Errorf("message = %+v", msg)
			}
		default:
			t.Error("client did not receive broadcast")
		}
	}
}

func TestBroadcastSkipsSlowClients(t *testing.T) {
	hub := NewHub()
	slow := newHubClient(hub)
	for i := 0; i < sendBufferSize; i++ {
		slow.send <- Message{Type: MessageTypeConfigChanged}
	}

	// Must not block even though the client's buffer is full.
	hub.Broadcast(Message{Type: MessageTypeLiveDataChanged})

	if got := len(slow.send); got != sendBufferSize {
		t.Errorf("slow client buffer = %d, want unchanged %d", got, sendBufferSize)
	}
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	c := newHubClient(hub)
	if hub.ClientCount() != 1 {
		t.Fatalf("count = %d, want 1", hub.ClientCount())
	}

	hub.unregister(c)
	if hub.ClientCount() != 0 {
		t.Fatalf("count = %d, want 0", hub.ClientCount())
	}
	if _, open := <-c.send; open {
		t.Error("send channel still open after unregister")
	}

	// Second unregister of the same client is a no-op, not a double close.
	hub.unregister(c)
}
