// Package web serves the game to browsers over websockets. Each connection
// gets its own session; the browser sends input and commands as protocol
// envelopes and receives state at protocol.BroadcastHz.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/strike/internal/logging"
	"github.com/tomz197/strike/internal/loop/session"
	"github.com/tomz197/strike/internal/protocol"
)

const (
	readLimit    = 1 << 16
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
	outboxSize   = 16
)

// Handler upgrades requests to websockets and runs one game per connection.
type Handler struct {
	opts     session.Options
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler returns a handler whose sessions are built from opts.
// The browser page is served from the same origin, so the default origin
// check is kept.
func NewHandler(opts session.Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	opts.Logger = logger
	return &Handler{
		opts:   opts,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	logger := h.logger.With("remote", r.RemoteAddr)
	logger.Info("browser connected")

	opts := h.opts
	opts.Logger = logger
	c := newConn(conn, session.New(opts), logger)
	c.serve(r.Context())

	logger.Info("browser disconnected")
}

// conn is one browser connection and the session it drives.
type conn struct {
	ws      *websocket.Conn
	session *session.Session
	outbox  chan []byte
	logger  *log.Logger
}

func newConn(ws *websocket.Conn, s *session.Session, logger *log.Logger) *conn {
	return &conn{
		ws:      ws,
		session: s,
		outbox:  make(chan []byte, outboxSize),
		logger:  logger,
	}
}

// serve runs the session, the writer and the reader until the browser goes
// away or ctx is cancelled.
func (c *conn) serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer c.ws.Close()

	go c.session.Run(ctx)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		// Closing the socket unblocks the reader
		defer c.ws.Close()
		defer cancel()
		if err := c.writeLoop(ctx); err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Debug("write loop ended", "err", err)
		}
	}()

	c.send(protocol.MsgWelcome, welcome(c.session.Snapshot()))

	if err := c.readLoop(ctx); err != nil && ctx.Err() == nil {
		c.logger.Debug("read loop ended", "err", err)
	}

	cancel()
	<-writerDone
	<-c.session.Done()
}

// readLoop decodes envelopes and applies them to the session.
func (c *conn) readLoop(ctx context.Context) error {
	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.ws.ReadMessage()
		if err != nil {
			return err
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))

		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			c.sendError(protocol.CodeBadMessage, err.Error())
			continue
		}
		if err := c.dispatch(ctx, env); err != nil {
			return err
		}
	}
}

// writeLoop is the only goroutine writing to the socket. It pushes state at
// the broadcast rate, queued messages as they arrive and pings.
func (c *conn) writeLoop(ctx context.Context) error {
	state := time.NewTicker(time.Second / protocol.BroadcastHz)
	defer state.Stop()
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	var last *session.Snapshot
	for {
		select {
		case <-ctx.Done():
			c.flush()
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return ctx.Err()

		case msg := <-c.outbox:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				return err
			}

		case <-state.C:
			// Every change publishes a new snapshot
			snap := c.session.Snapshot()
			if snap == last {
				continue
			}
			b, err := protocol.Encode(protocol.MsgState, stateOf(snap))
			if err != nil {
				return err
			}
			if err := c.write(websocket.TextMessage, b); err != nil {
				return err
			}
			last = snap

		case <-ping.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

// flush writes whatever is still queued, such as a final error.
func (c *conn) flush() {
	for {
		select {
		case msg := <-c.outbox:
			if c.write(websocket.TextMessage, msg) != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *conn) write(kind int, data []byte) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(kind, data)
}

// send queues a message for the writer. Messages are dropped when the
// browser cannot keep up.
func (c *conn) send(t string, payload any) {
	b, err := protocol.Encode(t, payload)
	if err != nil {
		c.logger.Error("encode failed", "type", t, "err", err)
		return
	}
	select {
	case c.outbox <- b:
	default:
		c.logger.Warn("outbox full, dropping message", "type", t)
	}
}

func (c *conn) sendError(code, msg string) {
	c.send(protocol.MsgError, protocol.Error{Code: code, Message: msg})
}
