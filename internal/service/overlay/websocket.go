package overlay

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"streampulse/internal/domain/models"
	drepo "streampulse/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// WSClient implements an EventStream backed by the push-feed WebSocket.
// At most one active connection per channel key: Subscribe refuses a channel
// that is already subscribed, and Close releases them all.
type WSClient struct {
	url            string
	authToken      string
	channels       []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	mu         sync.Mutex
	conn       *websocket.Conn
	connected  bool
	subscribed map[string]bool
}

// NewWSClient creates a new push-feed EventStream.
func NewWSClient(url, authToken string, channels []string, reconnectDelay, pingInterval time.Duration) drepo.EventStream {
	return &WSClient{
		url:            url,
		authToken:      authToken,
		channels:       channels,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		subscribed:     make(map[string]bool),
	}
}

// Connect establishes the WebSocket connection.
func (c *WSClient) Connect(ctx context.Context) error {
	u := c.url
	if c.authToken != "" {
		u = fmt.Sprintf("%s?token=%s", c.url, c.authToken)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("overlay connect: %w", err)
	}
	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()
	log.Printf("overlay: connected")
	return nil
}

// Subscribe joins the configured channels, at most once each.
func (c *WSClient) Subscribe(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil || !c.connected {
		return fmt.Errorf("overlay not connected")
	}
	for _, ch := range c.channels {
		if c.subscribed[ch] {
			continue
		}
		msg := map[string]string{"type": "subscribe", "channel": ch}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", ch, err)
		}
		c.subscribed[ch] = true
		log.Printf("overlay: subscribed %s", ch)
	}
	return nil
}

type wsEvent struct {
	Type    string `json:"type"`
	Sender  string `json:"sender"`
	Message string `json:"message"`
	Amount  int64  `json:"amount"`
	Key     string `json:"key"`
	TS      int64  `json:"ts"` // ms
}

// Read streams overlay events and errors.
func (c *WSClient) Read(ctx context.Context) (<-chan *models.OverlayEvent, <-chan error) {
	events := make(chan *models.OverlayEvent, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.mu.Lock()
				conn := c.conn
				c.mu.Unlock()
				if conn != nil {
					_ = conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(events)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				c.mu.Lock()
				conn := c.conn
				c.mu.Unlock()
				if conn == nil {
					errs <- fmt.Errorf("overlay conn nil")
					return
				}
				_, b, err := conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("overlay read: %w", err)
					return
				}
				var m wsEvent
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-event frames
					continue
				}
				if m.Type == "" {
					continue
				}
				at := time.Now()
				if m.TS > 0 {
					at = time.UnixMilli(m.TS)
				}
				ev := &models.OverlayEvent{
					Type:    m.Type,
					Sender:  m.Sender,
					Message: m.Message,
					Amount:  m.Amount,
					Key:     m.Key,
					At:      at,
				}
				select {
				case events <- ev:
				default:
					// drop on backpressure
				}
			}
		}
	}()

	return events, errs
}

// Reconnect closes and reconnects, then re-subscribes.
func (c *WSClient) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the connection and clears subscriptions.
func (c *WSClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	c.subscribed = make(map[string]bool)
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *WSClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}
