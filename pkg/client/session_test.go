package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvState(t *testing.T, ch <-chan AuthState) AuthState {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for auth state")
		return AuthState{}
	}
}

func TestSessionStore_StartsLoading(t *testing.T) {
	store := NewSessionStore()
	defer store.Close()

	state := store.Current()
	assert.True(t, state.Loading)
	assert.Nil(t, state.User)
}

func TestSessionStore_LoadingFlipsAfterFirstPublishOnly(t *testing.T) {
	store := NewSessionStore()
	defer store.Close()

	ch, cancel := store.Subscribe()
	defer cancel()

	first := recvState(t, ch)
	assert.True(t, first.Loading)

	store.Publish(nil)
	second := recvState(t, ch)
	assert.False(t, second.Loading)
	assert.Nil(t, second.User)

	store.Publish(&Identity{UserID: "u1", Name: "Ada"})
	third := recvState(t, ch)
	assert.False(t, third.Loading)
	require.NotNil(t, third.User)
	assert.Equal(t, "u1", third.User.UserID)
}

func TestSessionStore_SubscribeDeliversCurrentStateImmediately(t *testing.T) {
	store := NewSessionStore()
	defer store.Close()

	store.Publish(&Identity{UserID: "u1"})

	ch, cancel := store.Subscribe()
	defer cancel()

	state := recvState(t, ch)
	assert.False(t, state.Loading)
	require.NotNil(t, state.User)
	assert.Equal(t, "u1", state.User.UserID)
}

func TestSessionStore_UnsubscribeStopsDelivery(t *testing.T) {
	store := NewSessionStore()
	defer store.Close()

	ch, cancel := store.Subscribe()
	recvState(t, ch)

	cancel()
	// channel closes on unsubscribe
	_, open := <-ch
	assert.False(t, open)

	// a publish after unsubscribe must not panic
	store.Publish(&Identity{UserID: "u1"})
	cancel()
}

func TestSessionStore_SlowSubscriberGetsLatestState(t *testing.T) {
	store := NewSessionStore()
	defer store.Close()

	ch, cancel := store.Subscribe()
	defer cancel()

	// saturate the buffer without reading
	for i := 0; i < 40; i++ {
		store.Publish(&Identity{UserID: "stale"})
	}
	store.Publish(&Identity{UserID: "final"})

	var last AuthState
	for {
		select {
		case s := <-ch:
			last = s
			continue
		default:
		}
		break
	}
	require.NotNil(t, last.User)
	assert.Equal(t, "final", last.User.UserID)
}

func TestSessionStore_CloseClosesSubscribers(t *testing.T) {
	store := NewSessionStore()

	ch, cancel := store.Subscribe()
	defer cancel()
	recvState(t, ch)

	store.Close()
	_, open := <-ch
	assert.False(t, open)

	// publish after close is a no-op
	store.Publish(&Identity{UserID: "u1"})

	late, lateCancel := store.Subscribe()
	defer lateCancel()
	_, open = <-late
	assert.False(t, open)
}
