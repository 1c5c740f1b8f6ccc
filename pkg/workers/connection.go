package workers

import (
	"context"

	gametypes "github.com/cbodonnell/pong/pkg/game/types"
	"github.com/cbodonnell/pong/pkg/log"
	"github.com/cbodonnell/pong/pkg/network"
	"github.com/cbodonnell/pong/pkg/queue"
)

type ConnectionEventWorker struct {
	connectionEventChan <-chan network.ConnectionEvent
	serverEventQueue    queue.Queue
}

type NewConnectionEventWorkerOptions struct {
	ConnectionEventChan <-chan network.ConnectionEvent
	ServerEventQueue    queue.Queue
}

// NewConnectionEventWorker creates a new ConnectionEventWorker.
// The worker processes client events like connect and disconnect
// and writes server events to a queue for the game loop to process.
func NewConnectionEventWorker(opts NewConnectionEventWorkerOptions) *ConnectionEventWorker {
	return &ConnectionEventWorker{
		connectionEventChan: opts.ConnectionEventChan,
		serverEventQueue:    opts.ServerEventQueue,
	}
}

func (w *ConnectionEventWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-w.connectionEventChan:
			w.handleConnectionEvent(event)
		}
	}
}

func (w *ConnectionEventWorker) handleConnectionEvent(event network.ConnectionEvent) {
	var item interface{}
	switch event.Type {
	case network.ConnectionEventTypeConnect:
		item = &gametypes.ConnectSessionEvent{SessionID: event.ClientID}
	case network.ConnectionEventTypeDisconnect:
		item = &gametypes.DisconnectSessionEvent{SessionID: event.ClientID}
	default:
		log.Error("Unknown connection event type: %v", event.Type)
		return
	}

	if err := w.serverEventQueue.Enqueue(item); err != nil {
		log.Error("Failed to enqueue %s event for session %s: %v", event.Type, event.ClientID, err)
	}
}
