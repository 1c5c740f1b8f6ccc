package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/pong/pkg/log"
	"github.com/cbodonnell/pong/pkg/messages"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// WSServer represents a WebSocket server.
type WSServer struct {
	port  int
	tls   *TLSConfig
	codec messages.Codec
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewWSServerOptions struct {
	Port  int
	TLS   *TLSConfig
	Codec messages.Codec
}

// NewWSServer creates a new WebSocket server.
func NewWSServer(opts NewWSServerOptions) *WSServer {
	return &WSServer{
		port:  opts.Port,
		tls:   opts.TLS,
		codec: opts.Codec,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// AuthenticateHandler resolves the user behind an upgrade request.
type AuthenticateHandler func(r *http.Request) (string, error)

// ConnectHandler registers an upgraded connection and returns its session ID.
type ConnectHandler func(conn *websocket.Conn, userID string) (string, error)

// DisconnectHandler releases a session.
type DisconnectHandler func(clientID string)

// MessageHandler receives every decoded frame of a session, in order.
type MessageHandler func(ctx context.Context, clientID string, message *messages.Message)

// Handlers groups the callbacks of a WSServer.
type Handlers struct {
	Authenticate AuthenticateHandler
	Connect      ConnectHandler
	Disconnect   DisconnectHandler
	Message      MessageHandler
}

// Router returns the HTTP handler serving WebSocket upgrades on /ws.
func (s *WSServer) Router(ctx context.Context, h Handlers) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		userID := ""
		if h.Authenticate != nil {
			id, err := h.Authenticate(r)
			if err != nil {
				log.Warn("Rejected WebSocket connection from %s: %v", r.RemoteAddr, err)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			userID = id
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("Failed to upgrade to WebSocket: %v", err)
			return
		}
		log.Debug("New WebSocket connection from %s", conn.RemoteAddr().String())
		go s.handleWSConnection(ctx, conn, userID, h)
	})
	return r
}

// Start starts the WebSocket server and blocks until ctx is done or the server fails.
func (s *WSServer) Start(ctx context.Context, h Handlers) error {
	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{Addr: addr, Handler: s.Router(ctx, h)}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	var listenAndServe func() error
	if s.tls != nil {
		log.Info("WebSocket server listening on %s with TLS", addr)
		listenAndServe = func() error {
			return server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("WebSocket server listening on %s", addr)
		listenAndServe = server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("WebSocket server closed")
			return nil
		}
		return fmt.Errorf("websocket server error: %v", err)
	}
	return nil
}

// handleWSConnection handles a WebSocket connection.
func (s *WSServer) handleWSConnection(ctx context.Context, conn *websocket.Conn, userID string, h Handlers) {
	conn.SetReadLimit(messages.MaxMessageSize)

	clientID, err := h.Connect(conn, userID)
	if err != nil {
		log.Error("Failed to register WebSocket connection from %s: %v", conn.RemoteAddr().String(), err)
		conn.Close()
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		h.Disconnect(clientID)
		conn.Close()
	}()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		message, err := ReadMessageFromWS(s.codec, conn)
		if err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) || errors.Is(err, websocket.ErrReadLimit) || ctx.Err() != nil {
				log.Trace("Connection closed for %s: %v", clientID, err)
				return
			}
			if isDecodeError(err) {
				log.Debug("Dropping malformed frame from %s: %v", clientID, err)
				continue
			}
			log.Trace("Connection closed for %s: %v", clientID, err)
			return
		}

		// the session is assigned by the server, never taken from the frame
		message.SessionID = clientID
		h.Message(ctx, clientID, message)
	}
}

type decodeError struct {
	err error
}

func (e *decodeError) Error() string {
	return e.err.Error()
}

func isDecodeError(err error) bool {
	var d *decodeError
	return errors.As(err, &d)
}

// WriteMessageToWS writes a Message to a WebSocket connection
func WriteMessageToWS(codec messages.Codec, conn *websocket.Conn, msg *messages.Message) error {
	b, err := messages.SerializeMessage(codec, msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}

	return nil
}

// ReadMessageFromWS reads a Message from a WebSocket connection
func ReadMessageFromWS(codec messages.Codec, conn *websocket.Conn) (*messages.Message, error) {
	messageType, message, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	if messageType != websocket.BinaryMessage {
		return nil, &decodeError{err: fmt.Errorf("unexpected frame type %d", messageType)}
	}

	msg, err := messages.DeserializeMessage(codec, message)
	if err != nil {
		return nil, &decodeError{err: fmt.Errorf("failed to deserialize message: %v", err)}
	}

	return msg, nil
}
