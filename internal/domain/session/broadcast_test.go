package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBroadcasterPublishClosesSubscribers(t *testing.T) {
	b := NewBroadcaster()
	_, ch1 := b.Subscribe()
	_, ch2 := b.Subscribe()

	b.Publish()

	for _, ch := range []<-chan struct{}{ch1, ch2} {
		select {
		case <-ch:
		default:
			t.Fatal("subscriber channel not closed")
		}
	}
}

func TestBroadcasterLateSubscriberFiresImmediately(t *testing.T) {
	b := NewBroadcaster()
	b.Publish()

	_, ch := b.Subscribe()
	select {
	case <-ch:
	default:
		t.Fatal("late subscriber should observe the published logout")
	}
}

func TestBroadcasterUnsubscribe(t *testing.T) {
	b := NewBroadcaster()
	id, ch := b.Subscribe()
	b.Unsubscribe(id)
	b.Publish()

	// The channel was dropped before publish, so it is never closed.
	select {
	case <-ch:
		t.Fatal("unsubscribed channel should stay open")
	default:
	}
}

func TestBroadcasterResetReArms(t *testing.T) {
	b := NewBroadcaster()
	b.Publish()
	b.Reset()

	_, ch := b.Subscribe()
	select {
	case <-ch:
		t.Fatal("reset broadcaster should accept live subscribers")
	default:
	}

	b.Publish()
	require.NotNil(t, ch)
	select {
	case <-ch:
	default:
		t.Fatal("second publish should close the channel")
	}
}
