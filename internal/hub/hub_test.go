package hub

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
)

type fakeMembers struct {
	rooms map[string]map[string]bool
	err   error
}

func (f *fakeMembers) IsMember(_ context.Context, chatID, userID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.rooms[chatID][userID], nil
}

func newTestClient(h *Hub, userID string, buffer int) *Client {
	c := &Client{hub: h, userID: userID, send: make(chan []byte, buffer)}
	h.register(c)
	return c
}

func TestHub_Join(t *testing.T) {
	t.Run("member joins a room", func(t *testing.T) {
		members := &fakeMembers{rooms: map[string]map[string]bool{"chat-1": {"user-1": true}}}
		h := NewHub(members, 8)
		c := newTestClient(h, "user-1", 8)

		err := h.Join(context.Background(), c, "chat-1")

		require.NoError(t, err)
		assert.Equal(t, 1, h.RoomSize("chat-1"))
	})

	t.Run("non-member is rejected", func(t *testing.T) {
		members := &fakeMembers{rooms: map[string]map[string]bool{}}
		h := NewHub(members, 8)
		c := newTestClient(h, "user-1", 8)

		err := h.Join(context.Background(), c, "chat-1")

		assert.ErrorIs(t, err, common.ErrForbidden)
		assert.Equal(t, 0, h.RoomSize("chat-1"))
	})

	t.Run("membership check failure propagates", func(t *testing.T) {
		members := &fakeMembers{err: errors.New("store down")}
		h := NewHub(members, 8)
		c := newTestClient(h, "user-1", 8)

		err := h.Join(context.Background(), c, "chat-1")

		assert.Error(t, err)
	})

	t.Run("join after disconnect is a no-op", func(t *testing.T) {
		members := &fakeMembers{rooms: map[string]map[string]bool{"chat-1": {"user-1": true}}}
		h := NewHub(members, 8)
		c := newTestClient(h, "user-1", 8)
		h.disconnect(c)

		err := h.Join(context.Background(), c, "chat-1")

		require.NoError(t, err)
		assert.Equal(t, 0, h.RoomSize("chat-1"))
	})
}

func TestHub_Leave(t *testing.T) {
	members := &fakeMembers{rooms: map[string]map[string]bool{"chat-1": {"user-1": true}}}
	h := NewHub(members, 8)
	c := newTestClient(h, "user-1", 8)
	require.NoError(t, h.Join(context.Background(), c, "chat-1"))

	h.Leave(c, "chat-1")

	assert.Equal(t, 0, h.RoomSize("chat-1"))
	// The empty room is garbage collected.
	_, ok := h.rooms["chat-1"]
	assert.False(t, ok)
}

func TestHub_Disconnect(t *testing.T) {
	members := &fakeMembers{rooms: map[string]map[string]bool{
		"chat-1": {"user-1": true},
		"chat-2": {"user-1": true},
	}}
	h := NewHub(members, 8)
	c := newTestClient(h, "user-1", 8)
	require.NoError(t, h.Join(context.Background(), c, "chat-1"))
	require.NoError(t, h.Join(context.Background(), c, "chat-2"))

	h.disconnect(c)

	assert.Equal(t, 0, h.RoomSize("chat-1"))
	assert.Equal(t, 0, h.RoomSize("chat-2"))
	_, open := <-c.send
	assert.False(t, open)
}

func TestHub_TrySend(t *testing.T) {
	t.Run("delivers to a registered connection", func(t *testing.T) {
		h := NewHub(&fakeMembers{}, 8)
		c := newTestClient(h, "user-1", 8)

		h.trySend(c, []byte("hello"))

		assert.Equal(t, []byte("hello"), <-c.send)
	})

	t.Run("skips an evicted connection instead of panicking", func(t *testing.T) {
		members := &fakeMembers{rooms: map[string]map[string]bool{"chat-1": {"user-1": true}}}
		h := NewHub(members, 1)
		c := newTestClient(h, "user-1", 1)
		require.NoError(t, h.Join(context.Background(), c, "chat-1"))

		ev := common.Event{Type: common.EventMessageCreated, ChatID: "chat-1"}
		h.Broadcast("chat-1", ev)
		h.Broadcast("chat-1", ev)

		assert.NotPanics(t, func() { h.trySend(c, []byte("late")) })
	})
}

func TestHub_Broadcast(t *testing.T) {
	t.Run("fans out to every room member", func(t *testing.T) {
		members := &fakeMembers{rooms: map[string]map[string]bool{
			"chat-1": {"user-1": true, "user-2": true},
		}}
		h := NewHub(members, 8)
		a := newTestClient(h, "user-1", 8)
		b := newTestClient(h, "user-2", 8)
		outsider := newTestClient(h, "user-3", 8)
		require.NoError(t, h.Join(context.Background(), a, "chat-1"))
		require.NoError(t, h.Join(context.Background(), b, "chat-1"))

		h.Broadcast("chat-1", common.Event{
			Type:   common.EventMessageCreated,
			ChatID: "chat-1",
			Data:   map[string]string{"id": "msg-1"},
		})

		for _, c := range []*Client{a, b} {
			payload := <-c.send
			var ev common.Event
			require.NoError(t, json.Unmarshal(payload, &ev))
			assert.Equal(t, common.EventMessageCreated, ev.Type)
			assert.Equal(t, "chat-1", ev.ChatID)
		}
		assert.Empty(t, outsider.send)
	})

	t.Run("slow connection is evicted instead of stalling the room", func(t *testing.T) {
		members := &fakeMembers{rooms: map[string]map[string]bool{
			"chat-1": {"user-1": true, "user-2": true},
		}}
		h := NewHub(members, 1)
		slow := newTestClient(h, "user-1", 1)
		fast := newTestClient(h, "user-2", 8)
		require.NoError(t, h.Join(context.Background(), slow, "chat-1"))
		require.NoError(t, h.Join(context.Background(), fast, "chat-1"))

		ev := common.Event{Type: common.EventMessageCreated, ChatID: "chat-1"}
		h.Broadcast("chat-1", ev)
		h.Broadcast("chat-1", ev)

		assert.Equal(t, 1, h.RoomSize("chat-1"))
		assert.Len(t, fast.send, 2)
		// The evicted connection's channel is drained and closed.
		<-slow.send
		_, open := <-slow.send
		assert.False(t, open)
	})

	t.Run("disconnect after eviction does not close the channel twice", func(t *testing.T) {
		members := &fakeMembers{rooms: map[string]map[string]bool{"chat-1": {"user-1": true}}}
		h := NewHub(members, 1)
		c := newTestClient(h, "user-1", 1)
		require.NoError(t, h.Join(context.Background(), c, "chat-1"))

		ev := common.Event{Type: common.EventMessageCreated, ChatID: "chat-1"}
		h.Broadcast("chat-1", ev)
		h.Broadcast("chat-1", ev)
		require.Equal(t, 0, h.RoomSize("chat-1"))

		// The read pump runs this unconditionally once the socket dies.
		assert.NotPanics(t, func() { h.disconnect(c) })
	})

	t.Run("broadcast to an empty room is harmless", func(t *testing.T) {
		h := NewHub(&fakeMembers{}, 8)

		h.Broadcast("chat-9", common.Event{Type: common.EventMessageCreated, ChatID: "chat-9"})

		assert.Equal(t, 0, h.RoomSize("chat-9"))
	})
}
