// Package ws adapts a gorilla/websocket connection into the EventSink the
// registry and router operate on.
package ws

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"vchat/domain/event"
	"vchat/errors"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// envelope is the wire frame pushed to clients: the listener name plus the
// event payload.
type envelope struct {
	Event   string            `json:"event"`
	Payload event.DomainEvent `json:"payload"`
}

// Sink is one live connection endpoint. Events are queued on a buffered
// channel and written by a single pump goroutine; Consume never writes to
// the socket directly, so it stays safe under concurrent fan-out and cannot
// block longer than its context allows.
type Sink struct {
	log  *slog.Logger
	conn *websocket.Conn
	send chan envelope
	done chan struct{}
	once sync.Once
}

func NewSink(log *slog.Logger, conn *websocket.Conn, bufferSize int) *Sink {
	return &Sink{
		log:  log,
		conn: conn,
		send: make(chan envelope, bufferSize),
		done: make(chan struct{}),
	}
}

// Consume queues the event for delivery. A full buffer, an expired context,
// or a closed connection drops the event; the router treats all three as
// "unreachable endpoint", never as a failure of the write path.
func (s *Sink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case <-s.done:
		return errors.ErrEndpointClosed
	default:
	}

	select {
	case s.send <- envelope{Event: e.Name(), Payload: e}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("delivery timed out: %w", ctx.Err())
	case <-s.done:
		return errors.ErrEndpointClosed
	}
}

// WritePump drains the send queue onto the socket. It runs in its own
// goroutine for the lifetime of the connection and is the only writer.
func (s *Sink) WritePump() {
	defer s.Close()
	for {
		select {
		case <-s.done:
			return
		case env := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				s.log.Debug("Setting write deadline failed", "error", err)
				return
			}
			if err := s.conn.WriteJSON(env); err != nil {
				s.log.Debug("Write to endpoint failed, closing", "error", err)
				return
			}
		}
	}
}

// Close marks the endpoint dead and closes the socket. Safe to call from
// multiple goroutines; only the first call has an effect.
func (s *Sink) Close() {
	s.once.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}
