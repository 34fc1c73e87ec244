package session

import (
	"sync"

	"github.com/google/uuid"
)

// Broadcaster fans the logout signal out to every subscriber. One publisher
// (the guard on logout), N subscribers (each open dashboard surface). The
// channel is closed once and stays closed, so late subscribers of a
// logged-out session fire immediately.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[string]chan struct{}
	done bool
}

// NewBroadcaster returns an idle broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[string]chan struct{})}
}

// Subscribe registers a listener. The returned channel is closed when
// logout is published; the id unsubscribes.
func (b *Broadcaster) Subscribe() (string, <-chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := uuid.NewString()
	ch := make(chan struct{})
	if b.done {
		close(ch)
		return id, ch
	}
	b.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a listener.
func (b *Broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Publish signals logout to every subscriber. Publishing twice is harmless.
func (b *Broadcaster) Publish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.done {
		return
	}
	b.done = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}

// Reset re-arms the broadcaster after a fresh login.
func (b *Broadcaster) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done = false
}
