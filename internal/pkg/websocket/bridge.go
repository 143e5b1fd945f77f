package websocket

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/mentoraid/internal/pkg/notify"
)

// Bridge feeds notifications from the bus into the hub
type Bridge struct {
	bus    *notify.Bus
	hub    *Hub
	logger zerolog.Logger
}

// NewBridge creates a new Bridge
func NewBridge(bus *notify.Bus, hub *Hub, logger zerolog.Logger) *Bridge {
	return &Bridge{bus: bus, hub: hub, logger: logger}
}

// Start subscribes to the bus and forwards in the background until ctx is done
func (b *Bridge) Start(ctx context.Context) {
	sub := b.bus.Subscribe(256)
	go b.forward(ctx, sub)
}

func (b *Bridge) forward(ctx context.Context, sub *notify.Subscription) {
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-sub.C():
			if !ok {
				return
			}
			if !b.hub.Deliver(n) {
				b.logger.Debug().Msg("Hub stopped, notification bridge exiting")
				return
			}
		}
	}
}
