package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans out community events (new posts, pin confirmations) to websocket
// subscribers of a city. A redis pub/sub bridge carries events between
// instances.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	City string
	Send chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(city string) *Client {
	client := &Client{
		City: city,
		Send: make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[city] == nil {
		h.clients[city] = map[*Client]struct{}{}
	}
	h.clients[city][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cityClients, ok := h.clients[client.City]; ok {
		delete(cityClients, client)
		if len(cityClients) == 0 {
			delete(h.clients, client.City)
		}
	}
	close(client.Send)
}

func (h *Hub) Broadcast(city string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[city]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(city), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "city:*:events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		city := cityFromChannel(msg.Channel)
		h.mu.RLock()
		clients := h.clients[city]
		h.mu.RUnlock()
		for client := range clients {
			select {
			case client.Send <- []byte(msg.Payload):
			default:
			}
		}
	}
}

func redisChannel(city string) string {
	return "city:" + city + ":events"
}

func cityFromChannel(ch string) string {
	// city:{name}:events
	const prefix = "city:"
	const suffix = ":events"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
