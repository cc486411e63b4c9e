package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func newClient(hub *Hub, userID uuid.UUID, buffer int) *Client {
	return &Client{Hub: hub, UserID: userID, Send: make(chan []byte, buffer)}
}

func TestHubDeliversToEveryDevice(t *testing.T) {
	hub, _ := runHub(t)
	ann, bob := uuid.New(), uuid.New()

	phone := newClient(hub, ann, 4)
	laptop := newClient(hub, ann, 4)
	other := newClient(hub, bob, 4)
	for _, c := range []*Client{phone, laptop, other} {
		require.True(t, hub.Register(c))
	}
	require.Eventually(t, func() bool { return hub.Connections(ann) == 2 }, time.Second, 10*time.Millisecond)

	msg := dto.ChatMessageResponse{Id: uuid.New(), ChatId: uuid.New(), Role: "user", Content: "hi"}
	hub.NotifyChatMessage(context.Background(), []uuid.UUID{ann}, msg)

	for _, c := range []*Client{phone, laptop} {
		select {
		case raw := <-c.Send:
			var env struct {
				Type string                  `json:"type"`
				Data dto.ChatMessageResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &env))
			assert.Equal(t, MessageTypeChat, env.Type)
			assert.Equal(t, "hi", env.Data.Content)
		case <-time.After(time.Second):
			t.Fatal("message not delivered")
		}
	}
	assert.Empty(t, other.Send)
}

func TestHubDropsSlowClients(t *testing.T) {
	hub, _ := runHub(t)
	ann := uuid.New()

	slow := newClient(hub, ann, 1)
	require.True(t, hub.Register(slow))
	require.Eventually(t, func() bool { return hub.Connections(ann) == 1 }, time.Second, 10*time.Millisecond)

	msg := dto.ChatMessageResponse{Content: "x"}
	hub.NotifyChatMessage(context.Background(), []uuid.UUID{ann}, msg)
	hub.NotifyChatMessage(context.Background(), []uuid.UUID{ann}, msg)

	assert.Equal(t, 0, hub.Connections(ann))
	<-slow.Send
	_, open := <-slow.Send
	assert.False(t, open)
}

func TestHubUnregisterAndShutdown(t *testing.T) {
	hub, cancel := runHub(t)
	ann := uuid.New()

	first := newClient(hub, ann, 1)
	second := newClient(hub, ann, 1)
	require.True(t, hub.Register(first))
	require.True(t, hub.Register(second))

	hub.Unregister(first)
	require.Eventually(t, func() bool { return hub.Connections(ann) == 1 }, time.Second, 10*time.Millisecond)
	_, open := <-first.Send
	assert.False(t, open)

	cancel()
	require.Eventually(t, func() bool { return hub.Connections(ann) == 0 }, time.Second, 10*time.Millisecond)
	assert.False(t, hub.Register(newClient(hub, ann, 1)))
	hub.Unregister(second)
}
