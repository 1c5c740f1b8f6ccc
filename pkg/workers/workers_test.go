package workers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	mocks "github.com/cbodonnell/pong/mocks/github.com/cbodonnell/pong/pkg/queue"
	gametypes "github.com/cbodonnell/pong/pkg/game/types"
	"github.com/cbodonnell/pong/pkg/messages"
	"github.com/cbodonnell/pong/pkg/network"
	"github.com/cbodonnell/pong/pkg/repositories"
	"github.com/cbodonnell/pong/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	clientID string
	message  *messages.Message
}

type fakeSender struct {
	lock sync.Mutex
	sent []sent
}

func (s *fakeSender) SendMessageToAll(ctx context.Context, msg *messages.Message) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.sent = append(s.sent, sent{message: msg})
	return nil
}

func (s *fakeSender) SendMessageToClient(ctx context.Context, clientID string, msg *messages.Message) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.sent = append(s.sent, sent{clientID: clientID, message: msg})
	return nil
}

func TestServerMessageWorker_handleServerMessage(t *testing.T) {
	tests := []struct {
		name       string
		msg        ServerMessage
		wantClient string
		check      func(t *testing.T, payload []byte)
		wantErr    bool
	}{
		{
			name: "snapshot is a flatbuffer",
			msg: ServerMessage{
				Type: messages.MessageTypeServerMatchState,
				Message: &messages.ServerMatchState{
					Timestamp: 5,
					Winner:    -1,
					Slots:     []messages.PaddleSlotState{{Index: 0}, {Index: 1}},
				},
			},
			check: func(t *testing.T, payload []byte) {
				got, err := messages.DeserializeMatchState(payload)
				require.NoError(t, err)
				assert.Equal(t, int64(5), got.Timestamp)
				assert.Len(t, got.Slots, 2)
			},
		},
		{
			name: "session assignment targets one client",
			msg: ServerMessage{
				SessionID: "a",
				Type:      messages.MessageTypeServerSessionAssigned,
				Message:   &messages.ServerSessionAssigned{SessionID: "a", Slot: 0},
			},
			wantClient: "a",
			check: func(t *testing.T, payload []byte) {
				got := &messages.ServerSessionAssigned{}
				require.NoError(t, json.Unmarshal(payload, got))
				assert.Equal(t, "a", got.SessionID)
			},
		},
		{
			name: "match won is json",
			msg: ServerMessage{
				Type:    messages.MessageTypeServerMatchWon,
				Message: &messages.ServerMatchWon{Winner: 1, Scores: [2]int{4, 11}},
			},
			check: func(t *testing.T, payload []byte) {
				assert.JSONEq(t, `{"winner":1,"scores":[4,11]}`, string(payload))
			},
		},
		{
			name:    "snapshot with wrong payload type",
			msg:     ServerMessage{Type: messages.MessageTypeServerMatchState, Message: "nope"},
			wantErr: true,
		},
		{
			name:    "unknown type",
			msg:     ServerMessage{Type: messages.MessageTypeClientMove},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			w := NewServerMessageWorker(NewServerMessageWorkerOptions{Sender: sender})

			err := w.handleServerMessage(context.Background(), tt.msg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, sender.sent)
				return
			}
			require.NoError(t, err)
			require.Len(t, sender.sent, 1)
			assert.Equal(t, tt.wantClient, sender.sent[0].clientID)
			assert.Equal(t, tt.msg.Type, sender.sent[0].message.Type)
			tt.check(t, sender.sent[0].message.Payload)
		})
	}
}

func TestServerMessageWorker_Start(t *testing.T) {
	sender := &fakeSender{}
	ch := make(chan ServerMessage, 1)
	w := NewServerMessageWorker(NewServerMessageWorkerOptions{Sender: sender, ServerMessageChan: ch})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	ch <- ServerMessage{Type: messages.MessageTypeServerPlayerCount, Message: &messages.ServerPlayerCount{Count: 2}}
	require.Eventually(t, func() bool {
		sender.lock.Lock()
		defer sender.lock.Unlock()
		return len(sender.sent) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestConnectionEventWorker_handleConnectionEvent(t *testing.T) {
	mockQueue := mocks.NewQueue(t)
	w := NewConnectionEventWorker(NewConnectionEventWorkerOptions{ServerEventQueue: mockQueue})

	mockQueue.EXPECT().Enqueue(&gametypes.ConnectSessionEvent{SessionID: "a"}).Return(nil).Once()
	mockQueue.EXPECT().Enqueue(&gametypes.DisconnectSessionEvent{SessionID: "a"}).Return(errors.New("queue is full")).Once()

	w.handleConnectionEvent(network.ConnectionEvent{ClientID: "a", Type: network.ConnectionEventTypeConnect})
	w.handleConnectionEvent(network.ConnectionEvent{ClientID: "a", Type: network.ConnectionEventTypeDisconnect})
	// unknown types never reach the queue
	w.handleConnectionEvent(network.ConnectionEvent{ClientID: "a", Type: network.ConnectionEventType(99)})
}

type failingRepository struct {
	repositories.Repository
}

func (failingRepository) SaveMatchResult(ctx context.Context, result *models.MatchResult) error {
	return errors.New("database is gone")
}

func TestSaveMatchResultWorker(t *testing.T) {
	repo := repositories.NewInMemoryRepository()
	ch := make(chan SaveMatchResultRequest, 1)
	w := NewSaveMatchResultWorker(NewSaveMatchResultWorkerOptions{Repository: repo, SaveMatchResultChan: ch})
	assert.Equal(t, DefaultSaveTimeout, w.timeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	ch <- SaveMatchResultRequest{Result: &models.MatchResult{ID: "m1", WinnerSlot: 0, LeftScore: 11}}

	require.Eventually(t, func() bool {
		_, err := repo.GetMatchResult(context.Background(), "m1")
		return err == nil
	}, time.Second, 5*time.Millisecond)

	// failures are logged and do not stop the worker
	failing := NewSaveMatchResultWorker(NewSaveMatchResultWorkerOptions{Repository: failingRepository{}, Timeout: time.Second})
	failing.saveMatchResult(context.Background(), SaveMatchResultRequest{Result: &models.MatchResult{ID: "m2"}})
}
