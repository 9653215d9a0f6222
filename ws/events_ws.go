package ws

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Event is what a subscribed staff/kitchen display client receives.
type Event struct {
	Name      string    `json:"event"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventConnected          = "CONNECTED"
	EventOrderCreated       = "ORDER_CREATED"
	EventOrderStatusChanged = "ORDER_STATUS_CHANGED"
	EventOrderPaid          = "ORDER_PAID"
	EventItemAdded          = "ORDER_ITEM_ADDED"
	EventItemUpdated        = "ORDER_ITEM_UPDATED"
	EventItemStatusChanged  = "ORDER_ITEM_STATUS_CHANGED"
	EventItemRemoved        = "ORDER_ITEM_REMOVED"
	EventTableStatusChanged = "TABLE_STATUS_CHANGED"
)

// Conn is the slice of a websocket connection the hub needs; tests plug in
// fakes, production wires *websocket.Conn.
type Conn interface {
	WriteJSON(v any) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

const writeTimeout = 5 * time.Second

// EventHub fans lifecycle events out to every listener on a channel
// (one channel per branch). Delivery is best effort: a listener whose
// write fails or times out is dropped, it never stalls the publisher.
type EventHub struct {
	mu       sync.Mutex
	channels map[string]map[Conn]bool
}

func NewEventHub() *EventHub {
	return &EventHub{channels: make(map[string]map[Conn]bool)}
}

// BranchChannel names the per-branch channel.
func BranchChannel(branchID uint) string {
	return fmt.Sprintf("branch:%d", branchID)
}

// Subscribe registers the connection and acknowledges it with CONNECTED.
func (h *EventHub) Subscribe(channel string, c Conn) {
	h.mu.Lock()
	if h.channels[channel] == nil {
		h.channels[channel] = make(map[Conn]bool)
	}
	h.channels[channel][c] = true
	h.mu.Unlock()

	if err := h.write(c, Event{Name: EventConnected, Timestamp: time.Now()}); err != nil {
		h.Unsubscribe(channel, c)
	}
}

func (h *EventHub) Unsubscribe(channel string, c Conn) {
	h.mu.Lock()
	if _, ok := h.channels[channel][c]; ok {
		delete(h.channels[channel], c)
		c.Close()
	}
	h.mu.Unlock()
}

// Publish delivers the event to every listener currently on the channel.
// Dead listeners are evicted in place; the call never returns an error.
func (h *EventHub) Publish(channel, name string, payload any) {
	ev := Event{Name: name, Payload: payload, Timestamp: time.Now()}

	h.mu.Lock()
	conns := make([]Conn, 0, len(h.channels[channel]))
	for c := range h.channels[channel] {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := h.write(c, ev); err != nil {
			log.Printf("ws write error on %s: %v", channel, err)
			h.Unsubscribe(channel, c)
		}
	}
}

func (h *EventHub) write(c Conn, ev Event) error {
	c.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.WriteJSON(ev)
}

// ListenerCount is used by tests and the health endpoint.
func (h *EventHub) ListenerCount(channel string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.channels[channel])
}

// Deferred collects events during a state mutation so they go out only after
// the enclosing transaction has committed; a listener must never see an event
// for a state a subsequent read does not reflect yet.
type Deferred struct {
	hub     *EventHub
	channel string
	events  []Event
}

func (h *EventHub) Deferred(channel string) *Deferred {
	return &Deferred{hub: h, channel: channel}
}

func (d *Deferred) Add(name string, payload any) {
	d.events = append(d.events, Event{Name: name, Payload: payload})
}

// Flush publishes the collected events in the order they were added.
// Call it only after the persistence call has returned successfully.
func (d *Deferred) Flush() {
	for _, ev := range d.events {
		d.hub.Publish(d.channel, ev.Name, ev.Payload)
	}
	d.events = nil
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/branches/:id/events
func (h *EventHub) HandleWebSocket(c *gin.Context) {
	branchID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || branchID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid branch id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	channel := BranchChannel(uint(branchID))
	h.Subscribe(channel, conn)

	// Listeners only receive; the read loop exists to notice the client
	// hanging up so the handle can be deregistered.
	go func() {
		defer h.Unsubscribe(channel, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
