package ws

import (
	"sync"
	"testing"

	"roamio/internal/domain"
)

func TestPublishRouting(t *testing.T) {
	hub := NewHub()
	owner := &Client{UserID: 1, Role: domain.RoleUser, Send: make(chan []byte, 4)}
	other := &Client{UserID: 2, Role: domain.RoleUser, Send: make(chan []byte, 4)}
	admin := &Client{UserID: 3, Role: domain.RoleAdmin, Send: make(chan []byte, 4)}
	hub.Register(owner)
	hub.Register(other)
	hub.Register(admin)

	hub.Publish(1, Event{Type: "commission.approved", Data: map[string]int{"id": 9}})

	if len(owner.Send) != 1 {
		t.Errorf("owner should receive the event, got %d", len(owner.Send))
	}
	if len(other.Send) != 0 {
		t.Errorf("unrelated user should not receive the event, got %d", len(other.Send))
	}
	if len(admin.Send) != 1 {
		t.Errorf("admin should receive every event, got %d", len(admin.Send))
	}
}

func TestPublishNilHubAndSlowConsumer(t *testing.T) {
	var hub *Hub
	hub.Publish(1, Event{Type: "noop"}) // must not panic

	h := NewHub()
	slow := &Client{UserID: 1, Role: domain.RoleUser, Send: make(chan []byte)} // unbuffered, nobody reading
	h.Register(slow)
	h.Publish(1, Event{Type: "payout.requested"}) // must not block
}

func TestUnregisterOnClose(t *testing.T) {
	hub := NewHub()
	c := &Client{UserID: 5, Role: domain.RoleUser, Send: make(chan []byte, 1)}
	hub.Register(c)
	c.Close()
	c.Close() // second close must be a no-op

	hub.Publish(5, Event{Type: "affiliate.active"})
	if len(hub.clients) != 0 {
		t.Errorf("client should be gone after Close, have %d", len(hub.clients))
	}
}

// A disconnect racing a lifecycle event must never send on a closed channel.
// Run with -race to exercise the locking.
func TestPublishConcurrentWithClose(t *testing.T) {
	hub := NewHub()
	for i := 0; i < 50; i++ {
		c := &Client{UserID: 1, Role: domain.RoleUser, Send: make(chan []byte, 1)}
		hub.Register(c)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				hub.Publish(1, Event{Type: "payout.requested"})
			}
		}()
		go func() {
			defer wg.Done()
			c.Close()
		}()
		wg.Wait()
	}
}
