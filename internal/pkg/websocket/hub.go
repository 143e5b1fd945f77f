package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/mentoraid/internal/pkg/notify"
)

// Hub maintains the set of active dashboard clients and pushes notifications to them
type Hub struct {
	// Registered clients organized by recipient (session ID)
	clients map[string]map[*Client]bool

	// Notifications waiting to be delivered
	deliver chan notify.Notification

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Recipients whose clients must be dropped, e.g. after logout
	disconnect chan string

	// Closed when Run returns
	done chan struct{}

	// Guards clients for readers outside the Run loop
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		deliver:    make(chan notify.Notification, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		disconnect: make(chan string, 16),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles client registrations and deliveries until ctx is done
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case recipient := <-h.disconnect:
			h.disconnectRecipient(recipient)

		case n := <-h.deliver:
			h.broadcast(n)
		}
	}
}

// Deliver queues a notification for its recipients. It returns false when
// the hub has stopped.
func (h *Hub) Deliver(n notify.Notification) bool {
	select {
	case h.deliver <- n:
		return true
	case <-h.done:
		return false
	}
}

// Disconnect closes every client of recipient. It returns false when the
// hub has stopped.
func (h *Hub) Disconnect(recipient string) bool {
	if recipient == "" {
		return false
	}
	select {
	case h.disconnect <- recipient:
		return true
	case <-h.done:
		return false
	}
}

// ClientCount returns the number of connected clients for a recipient, or
// all clients when recipient is empty
func (h *Hub) ClientCount(recipient string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if recipient != "" {
		return len(h.clients[recipient])
	}
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.recipient]; !ok {
		h.clients[client.recipient] = make(map[*Client]bool)
	}
	h.clients[client.recipient][client] = true

	h.logger.Info().
		Str("recipient", client.recipient).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) disconnectRecipient(recipient string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients[recipient] {
		h.removeLocked(client)
	}
}

// removeLocked drops a client; callers hold h.mu
func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.recipient]
	if !ok || !clients[client] {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.recipient)
	}

	h.logger.Info().
		Str("recipient", client.recipient).
		Str("addr", client.remoteAddr()).
		Msg("Client unregistered")
}

// broadcast sends n to every client allowed to see it
func (h *Hub) broadcast(n notify.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		h.logger.Error().Err(err).Str("notificationID", n.ID).Msg("Failed to marshal notification")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for recipient, clients := range h.clients {
		if !n.VisibleTo(recipient) {
			continue
		}
		for client := range clients {
			select {
			case client.send <- data:
				sent++
			default:
				// Slow or stalled client
				h.removeLocked(client)
			}
		}
	}

	h.logger.Debug().
		Str("notificationID", n.ID).
		Str("recipient", n.Recipient).
		Int("clientCount", sent).
		Msg("Notification pushed to clients")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}
