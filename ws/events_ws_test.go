package ws

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	events []Event
	fail   bool
	closed bool
}

func (f *fakeConn) WriteJSON(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.events = append(f.events, v.(Event))
	return nil
}

func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) snapshot() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Event, len(f.events))
	copy(out, f.events)
	return out
}

func TestSubscribeSendsConnectedAck(t *testing.T) {
	hub := NewEventHub()
	c := &fakeConn{}

	hub.Subscribe("branch:1", c)

	events := c.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, EventConnected, events[0].Name)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, 1, hub.ListenerCount("branch:1"))
}

func TestPublishFansOutPerChannel(t *testing.T) {
	hub := NewEventHub()
	a1, a2 := &fakeConn{}, &fakeConn{}
	b := &fakeConn{}
	hub.Subscribe("branch:1", a1)
	hub.Subscribe("branch:1", a2)
	hub.Subscribe("branch:2", b)

	hub.Publish("branch:1", EventOrderCreated, map[string]any{"orderId": 7})

	for _, c := range []*fakeConn{a1, a2} {
		events := c.snapshot()
		require.Len(t, events, 2) // CONNECTED + the event
		assert.Equal(t, EventOrderCreated, events[1].Name)
	}
	// the other channel hears nothing
	assert.Len(t, b.snapshot(), 1)
}

func TestDeadListenerIsDroppedSilently(t *testing.T) {
	hub := NewEventHub()
	healthy := &fakeConn{}
	dead := &fakeConn{}
	hub.Subscribe("branch:1", healthy)
	hub.Subscribe("branch:1", dead)
	dead.fail = true

	hub.Publish("branch:1", EventOrderPaid, nil)
	hub.Publish("branch:1", EventOrderPaid, nil)

	assert.Equal(t, 1, hub.ListenerCount("branch:1"))
	assert.True(t, dead.closed)
	assert.Len(t, healthy.snapshot(), 3) // CONNECTED + both publishes
}

func TestUnsubscribeIdempotent(t *testing.T) {
	hub := NewEventHub()
	c := &fakeConn{}
	hub.Subscribe("branch:1", c)

	hub.Unsubscribe("branch:1", c)
	hub.Unsubscribe("branch:1", c)

	assert.Equal(t, 0, hub.ListenerCount("branch:1"))
	assert.True(t, c.closed)
}

func TestPublishDuringRegistryChurn(t *testing.T) {
	hub := NewEventHub()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c := &fakeConn{}
			hub.Subscribe("branch:1", c)
			hub.Unsubscribe("branch:1", c)
		}()
		go func() {
			defer wg.Done()
			hub.Publish("branch:1", EventItemStatusChanged, nil)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, hub.ListenerCount("branch:1"))
}

func TestDeferredFlushPreservesOrder(t *testing.T) {
	hub := NewEventHub()
	c := &fakeConn{}
	hub.Subscribe("branch:3", c)

	def := hub.Deferred("branch:3")
	def.Add(EventOrderCreated, map[string]any{"orderId": 1})
	def.Add(EventItemAdded, map[string]any{"orderId": 1, "itemId": 2})

	// nothing goes out before the enclosing mutation commits
	assert.Len(t, c.snapshot(), 1)

	def.Flush()
	events := c.snapshot()
	require.Len(t, events, 3)
	assert.Equal(t, EventOrderCreated, events[1].Name)
	assert.Equal(t, EventItemAdded, events[2].Name)

	// flushing again does not replay
	def.Flush()
	assert.Len(t, c.snapshot(), 3)
}

func TestBranchChannelName(t *testing.T) {
	assert.Equal(t, "branch:12", BranchChannel(12))
}

func TestHandleWebSocketRejectsBadBranchID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewEventHub()
	r := gin.New()
	r.GET("/ws/branches/:id/events", hub.HandleWebSocket)

	for _, id := range []string{"abc", "12abc", "0", "-1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ws/branches/"+id+"/events", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "id %q", id)
	}
}
