package server

import (
	"errors"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sung0916/my-english-edu-sub001/pkg/engine/logging"
)

// sendBuffer is how many outgoing messages may queue before a slow client
// is dropped
const sendBuffer = 64

var errConnectionClosed = errors.New("connection closed")

// Connection wraps the WebSocket connection with additional fields
type Connection struct {
	id     string
	ws     *websocket.Conn
	send   chan []byte
	logger logging.Logger

	mu     sync.Mutex
	closed bool
}

// NewConnection creates a new connection wrapper
func NewConnection(ws *websocket.Conn, logger logging.Logger) *Connection {
	id := uuid.NewString()
	return &Connection{
		id:     id,
		ws:     ws,
		send:   make(chan []byte, sendBuffer),
		logger: logger.With("conn", id),
	}
}

// ID returns the connection's unique id
func (c *Connection) ID() string {
	return c.id
}

// ReadPump reads messages until the client goes away, handing each to h
func (c *Connection) ReadPump(h func(message []byte)) {
	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warnf("error reading message: %v", err)
			}
			return
		}
		h(message)
	}
}

// WritePump writes queued messages to the WebSocket connection until the
// queue is closed
func (c *Connection) WritePump() {
	defer c.ws.Close()

	for message := range c.send {
		w, err := c.ws.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		if _, err := w.Write(message); err != nil {
			return
		}
		if err := w.Close(); err != nil {
			return
		}
	}
	c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// SendMessage queues a message for the client. It never blocks; a full
// queue drops the client.
func (c *Connection) SendMessage(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errConnectionClosed
	}
	select {
	case c.send <- data:
	default:
		c.logger.Warnf("send queue full, dropping client")
		c.closeLocked()
		c.ws.Close()
		return errConnectionClosed
	}
	return nil
}

// Close stops the write pump once queued messages are flushed
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Connection) closeLocked() {
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
