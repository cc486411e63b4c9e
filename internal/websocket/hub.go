package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RelayChannel is the Redis channel instances use to reach each other's
// clients.
const RelayChannel = "chat_events"

const MessageTypeChat = "chat_message"

type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type relayPayload struct {
	Origin  string          `json:"origin"`
	UserIDs []string        `json:"user_ids"`
	Message json.RawMessage `json:"message"`
}

type Hub struct {
	// UserID -> connections, one per device.
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	// Nil when running as a single instance.
	rdb *redis.Client

	instanceID string
	logger     logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// Run serves registrations until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Debug("HUB", "Client registered", map[string]interface{}{"user_id": client.UserID.String()})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// Register hands a client to the hub. It reports false once the hub has
// stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// remove closes the client's queue once, if it is still registered.
func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[client.UserID]
	for i, c := range clients {
		if c == client {
			h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, clients := range h.clients {
		for _, c := range clients {
			close(c.Send)
		}
		delete(h.clients, userID)
	}
}

// Connections returns how many live connections a user has here.
func (h *Hub) Connections(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// NotifyChatMessage pushes a stored chat message to every participant.
func (h *Hub) NotifyChatMessage(ctx context.Context, userIDs []uuid.UUID, message dto.ChatMessageResponse) {
	data, err := json.Marshal(Envelope{Type: MessageTypeChat, Data: message})
	if err != nil {
		h.logger.Error("HUB", "Failed to encode chat message", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliver(userIDs, data)

	if h.rdb == nil {
		return
	}
	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id.String()
	}
	payload, _ := json.Marshal(relayPayload{Origin: h.instanceID, UserIDs: ids, Message: data})
	if err := h.rdb.Publish(ctx, RelayChannel, payload).Err(); err != nil {
		h.logger.Warn("HUB", "Failed to relay chat message", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Hub) deliver(userIDs []uuid.UUID, data []byte) {
	var stale []*Client

	h.mu.RLock()
	for _, userID := range userIDs {
		for _, client := range h.clients[userID] {
			select {
			case client.Send <- data:
			default:
				stale = append(stale, client)
			}
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.logger.Warn("HUB", "Client send buffer full, disconnecting", map[string]interface{}{"user_id": client.UserID.String()})
		h.remove(client)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, RelayChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload relayPayload
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("HUB", "Invalid relay payload", map[string]interface{}{"error": err.Error()})
				continue
			}
			// Local clients were already served by the publishing instance.
			if payload.Origin == h.instanceID {
				continue
			}

			userIDs := make([]uuid.UUID, 0, len(payload.UserIDs))
			for _, raw := range payload.UserIDs {
				if id, err := uuid.Parse(raw); err == nil {
					userIDs = append(userIDs, id)
				}
			}
			h.deliver(userIDs, payload.Message)
		}
	}
}
