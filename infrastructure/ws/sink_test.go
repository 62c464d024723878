package ws

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vchat/domain"
	"vchat/domain/event"
	"vchat/errors"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// dialTestConn upgrades a loopback connection and returns both ends.
func dialTestConn(t *testing.T) (server, client *websocket.Conn) {
	req := require.New(t)
	upgrader := websocket.Upgrader{}
	conns := make(chan *websocket.Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		req.NoError(err)
		conns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	req.NoError(err)
	t.Cleanup(func() { _ = client.Close() })

	return <-conns, client
}

func TestSink_Consume_Delivers_Envelope(t *testing.T) {
	req := require.New(t)
	server, client := dialTestConn(t)

	sink := NewSink(slog.Default(), server, 8)
	defer sink.Close()
	go sink.WritePump()

	incoming := event.IncomingCall{
		URL:      "https://v.example/r/abc",
		FromUser: "Alice Doe",
		Caller:   domain.UserID("uuid-123"),
		At:       time.Now().UTC(),
	}
	req.NoError(sink.Consume(context.Background(), incoming))

	// The client reads one frame: listener name plus payload
	var frame struct {
		Event   string `json:"event"`
		Payload struct {
			URL      string `json:"url"`
			FromUser string `json:"incomingCallFrom"`
		} `json:"payload"`
	}
	req.NoError(client.SetReadDeadline(time.Now().Add(time.Second)))
	req.NoError(client.ReadJSON(&frame))
	req.Equal(incoming.Name(), frame.Event)
	req.Equal(incoming.URL, frame.Payload.URL)
	req.Equal("Alice Doe", frame.Payload.FromUser)
}

func TestSink_Consume_After_Close(t *testing.T) {
	req := require.New(t)
	server, _ := dialTestConn(t)

	sink := NewSink(slog.Default(), server, 8)
	sink.Close()

	err := sink.Consume(context.Background(), event.IncomingCall{URL: "u"})
	req.ErrorIs(err, errors.ErrEndpointClosed)

	// Closing twice is safe
	sink.Close()
}

func TestSink_Consume_Times_Out_On_Full_Buffer(t *testing.T) {
	req := require.New(t)
	server, _ := dialTestConn(t)

	// No pump draining and a single-slot buffer
	sink := NewSink(slog.Default(), server, 1)
	defer sink.Close()

	req.NoError(sink.Consume(context.Background(), event.IncomingCall{URL: "first"}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := sink.Consume(ctx, event.IncomingCall{URL: "second"})
	req.Error(err)
	req.ErrorIs(err, context.DeadlineExceeded)
}
