package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options configures a Bus
type Options struct {
	// DefaultDuration applies to notifications published without a duration
	DefaultDuration time.Duration
	// HistorySize bounds the recent-notifications ring; 0 disables history
	HistorySize int
	// OnPublish and OnDrop are optional observation hooks
	OnPublish func(Notification)
	OnDrop    func(Notification)
}

// Bus fans notifications out to subscribers. Delivery never blocks the
// publisher: a subscriber whose buffer is full misses the notification.
type Bus struct {
	mu      sync.RWMutex
	subs    map[uint64]*Subscription
	nextID  uint64
	closed  bool
	history *ring

	defaultDuration time.Duration
	onPublish       func(Notification)
	onDrop          func(Notification)

	now    func() time.Time
	logger zerolog.Logger
}

// NewBus creates a notification bus
func NewBus(opts Options, logger zerolog.Logger) *Bus {
	if opts.DefaultDuration <= 0 {
		opts.DefaultDuration = DefaultDuration
	}
	return &Bus{
		subs:            make(map[uint64]*Subscription),
		history:         newRing(opts.HistorySize),
		defaultDuration: opts.DefaultDuration,
		onPublish:       opts.OnPublish,
		onDrop:          opts.OnDrop,
		now:             time.Now,
		logger:          logger,
	}
}

// Publish stamps n with an ID, timestamp, default duration and the recipient
// carried by ctx, records it and delivers it to every subscriber.
func (b *Bus) Publish(ctx context.Context, n Notification) Notification {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Type == "" {
		n.Type = TypeInfo
	}
	if n.Duration <= 0 {
		n.Duration = b.defaultDuration.Milliseconds()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = b.now()
	}
	if n.Recipient == "" {
		if recipient, ok := RecipientFrom(ctx); ok {
			n.Recipient = recipient
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		b.logger.Debug().Str("message", n.Message).Msg("Notification published after bus closed")
		return n
	}

	b.history.push(n)

	for _, sub := range b.subs {
		select {
		case sub.ch <- n:
		default:
			b.logger.Warn().
				Uint64("subscriber", sub.id).
				Str("notificationID", n.ID).
				Msg("Subscriber buffer full, notification dropped")
			if b.onDrop != nil {
				b.onDrop(n)
			}
		}
	}

	if b.onPublish != nil {
		b.onPublish(n)
	}

	b.logger.Debug().
		Str("type", string(n.Type)).
		Str("recipient", n.Recipient).
		Str("message", n.Message).
		Int("subscribers", len(b.subs)).
		Msg("Notification published")
	return n
}

// Subscribe registers a new subscriber with the given channel buffer
func (b *Bus) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		id:  b.nextID,
		ch:  make(chan Notification, buffer),
		bus: b,
	}
	if b.closed {
		close(sub.ch)
		sub.done = true
		return sub
	}
	b.subs[sub.id] = sub
	return sub
}

// Recent returns up to limit notifications visible to recipient, newest first.
// An empty recipient returns only broadcast notifications.
func (b *Bus) Recent(recipient string, limit int) []Notification {
	b.mu.RLock()
	all := b.history.snapshot()
	b.mu.RUnlock()

	result := make([]Notification, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if !all[i].VisibleTo(recipient) {
			continue
		}
		result = append(result, all[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result
}

// SubscriberCount reports the number of live subscriptions
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close ends every subscription; later publishes are discarded
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		sub.done = true
		close(sub.ch)
	}
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub.done {
		return
	}
	sub.done = true
	delete(b.subs, sub.id)
	close(sub.ch)
}

// Subscription receives notifications until closed
type Subscription struct {
	id   uint64
	ch   chan Notification
	bus  *Bus
	done bool // guarded by bus.mu
}

// C returns the delivery channel; it is closed when the subscription ends
func (s *Subscription) C() <-chan Notification {
	return s.ch
}

// Close stops delivery. It is safe to call more than once.
func (s *Subscription) Close() {
	s.bus.unsubscribe(s)
}

// ring is a fixed-capacity FIFO of recent notifications
type ring struct {
	items []Notification
	start int
	size  int
}

func newRing(capacity int) *ring {
	if capacity < 0 {
		capacity = 0
	}
	return &ring{items: make([]Notification, capacity)}
}

func (r *ring) push(n Notification) {
	if len(r.items) == 0 {
		return
	}
	idx := (r.start + r.size) % len(r.items)
	r.items[idx] = n
	if r.size < len(r.items) {
		r.size++
		return
	}
	r.start = (r.start + 1) % len(r.items)
}

// snapshot returns the ring content oldest first
func (r *ring) snapshot() []Notification {
	out := make([]Notification, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.items[(r.start+i)%len(r.items)]
	}
	return out
}
