package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	authproviders "github.com/cbodonnell/pong/pkg/auth/providers"
	"github.com/cbodonnell/pong/pkg/messages"
	"github.com/cbodonnell/pong/pkg/queue"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	lock      sync.Mutex
	frames    [][]byte
	writeErr  error
	deadlines int
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.frames = append(c.frames, data)
	return nil
}

func (c *fakeConn) SetWriteDeadline(t time.Time) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.deadlines++
	return nil
}

func (c *fakeConn) Close() error {
	return nil
}

func nextEvent(t *testing.T, cm *ClientManager) ConnectionEvent {
	t.Helper()
	select {
	case ev := <-cm.GetConnectionEventChan():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for connection event")
		return ConnectionEvent{}
	}
}

func TestClientManager(t *testing.T) {
	cm := NewClientManager()
	conn := &fakeConn{}

	id, err := cm.ConnectClient(conn, "user-1")
	require.NoError(t, err)
	assert.Len(t, id, 36)
	assert.True(t, cm.Exists(id))
	assert.Equal(t, 1, cm.Count())

	ev := nextEvent(t, cm)
	assert.Equal(t, ConnectionEventTypeConnect, ev.Type)
	assert.Equal(t, id, ev.ClientID)
	assert.Equal(t, ClientConnectData{UserID: "user-1"}, ev.Data)

	client, err := cm.GetClient(id)
	require.NoError(t, err)
	require.NoError(t, client.Write([]byte("frame")))
	assert.Equal(t, [][]byte{[]byte("frame")}, conn.frames)
	assert.Equal(t, 1, conn.deadlines)

	cm.DisconnectClient(id)
	ev = nextEvent(t, cm)
	assert.Equal(t, ConnectionEventTypeDisconnect, ev.Type)
	assert.False(t, cm.Exists(id))

	// a second disconnect emits nothing
	cm.DisconnectClient(id)
	select {
	case ev := <-cm.GetConnectionEventChan():
		t.Fatalf("unexpected event %v", ev)
	default:
	}

	_, err = cm.GetClient(id)
	assert.Error(t, err)
}

func TestClientManager_UniqueIDs(t *testing.T) {
	cm := NewClientManager()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := cm.ConnectClient(&fakeConn{}, "")
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
		nextEvent(t, cm)
	}
}

func TestClientWriteError(t *testing.T) {
	cm := NewClientManager()
	id, err := cm.ConnectClient(&fakeConn{writeErr: errors.New("broken pipe")}, "")
	require.NoError(t, err)
	nextEvent(t, cm)

	client, err := cm.GetClient(id)
	require.NoError(t, err)
	assert.Error(t, client.Write([]byte("frame")))
}

type testServer struct {
	nm    *NetworkManager
	queue queue.Queue
	codec messages.Codec
	url   string
}

func newTestServer(t *testing.T, auth authproviders.AuthProvider) *testServer {
	t.Helper()

	codec, err := messages.NewCodec("zstd")
	require.NoError(t, err)
	mq := queue.NewInMemoryQueue(16)
	nm := NewNetworkManager(NewNetworkManagerOptions{
		AuthProvider:  auth,
		ClientManager: NewClientManager(),
		MessageQueue:  mq,
		Codec:         codec,
	})

	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(nm.WSServer.Router(ctx, nm.Handlers()))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return &testServer{
		nm:    nm,
		queue: mq,
		codec: codec,
		url:   "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws",
	}
}

func TestNetworkManager_RoundTrip(t *testing.T) {
	s := newTestServer(t, nil)

	conn, _, err := websocket.DefaultDialer.Dial(s.url, nil)
	require.NoError(t, err)
	defer conn.Close()

	ev := nextEvent(t, s.nm.ClientManager)
	require.Equal(t, ConnectionEventTypeConnect, ev.Type)
	clientID := ev.ClientID

	// malformed and server-only frames are dropped without closing the connection
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte("junk")))
	require.NoError(t, WriteMessageToWS(s.codec, conn, &messages.Message{Type: messages.MessageTypeServerMatchState}))

	err = WriteMessageToWS(s.codec, conn, &messages.Message{
		SessionID: "spoofed",
		Type:      messages.MessageTypeClientMove,
		Payload:   []byte(`{"direction":"up"}`),
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return s.queue.Size() == 1 }, 2*time.Second, 10*time.Millisecond)
	items, err := s.queue.ReadAllMessages()
	require.NoError(t, err)
	msg, ok := items[0].(*messages.Message)
	require.True(t, ok)
	assert.Equal(t, clientID, msg.SessionID)
	assert.Equal(t, messages.MessageTypeClientMove, msg.Type)

	err = s.nm.SendMessageToAll(context.Background(), &messages.Message{
		Type:    messages.MessageTypeServerPlayerCount,
		Payload: []byte(`{"count":1}`),
	})
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	got, err := ReadMessageFromWS(s.codec, conn)
	require.NoError(t, err)
	assert.Equal(t, messages.MessageTypeServerPlayerCount, got.Type)
	assert.Equal(t, `{"count":1}`, string(got.Payload))

	err = s.nm.SendMessageToClient(context.Background(), clientID, &messages.Message{Type: messages.MessageTypeServerReadyChanged})
	require.NoError(t, err)
	got, err = ReadMessageFromWS(s.codec, conn)
	require.NoError(t, err)
	assert.Equal(t, messages.MessageTypeServerReadyChanged, got.Type)

	conn.Close()
	ev = nextEvent(t, s.nm.ClientManager)
	assert.Equal(t, ConnectionEventTypeDisconnect, ev.Type)
	assert.Equal(t, clientID, ev.ClientID)
}

func TestNetworkManager_Authentication(t *testing.T) {
	s := newTestServer(t, authproviders.StaticAuthProvider{"good-token": "user-1"})

	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{name: "missing token", query: "", wantStatus: http.StatusUnauthorized},
		{name: "bad token", query: "?token=bad", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp, err := websocket.DefaultDialer.Dial(s.url+tt.query, nil)
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	conn, _, err := websocket.DefaultDialer.Dial(s.url+"?token=good-token", nil)
	require.NoError(t, err)
	defer conn.Close()

	ev := nextEvent(t, s.nm.ClientManager)
	assert.Equal(t, ConnectionEventTypeConnect, ev.Type)
	assert.Equal(t, ClientConnectData{UserID: "user-1"}, ev.Data)
}

func TestSendMessageToClientUnknown(t *testing.T) {
	s := newTestServer(t, nil)
	err := s.nm.SendMessageToClient(context.Background(), "nobody", &messages.Message{Type: messages.MessageTypeServerPlayerCount})
	assert.Error(t, err)
}

func TestNetworkManager_handleMessage(t *testing.T) {
	mq := queue.NewInMemoryQueue(16)
	nm := NewNetworkManager(NewNetworkManagerOptions{
		ClientManager: NewClientManager(),
		MessageQueue:  mq,
	})
	clientID, err := nm.ClientManager.ConnectClient(&fakeConn{}, "")
	require.NoError(t, err)

	tests := []struct {
		name      string
		clientID  string
		msgType   messages.MessageType
		wantQueue int
	}{
		{name: "client intent is queued", clientID: clientID, msgType: messages.MessageTypeClientReady, wantQueue: 1},
		{name: "server message type is ignored", clientID: clientID, msgType: messages.MessageTypeServerMatchWon, wantQueue: 1},
		{name: "unregistered client is ignored", clientID: "ghost", msgType: messages.MessageTypeClientReady, wantQueue: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nm.handleMessage(context.Background(), tt.clientID, &messages.Message{SessionID: tt.clientID, Type: tt.msgType})
			assert.Equal(t, tt.wantQueue, mq.Size())
		})
	}
}
