package services

import "sync"

// OrderLocks serializes mutations per order so two concurrent AddItem calls
// cannot corrupt the item collection or double-count totals. The Table row is
// the only cross-order contention point and it is guarded by a conditional
// write instead, see TableService.
type OrderLocks struct {
	mu sync.Mutex
	m  map[uint]*orderLock
}

type orderLock struct {
	mu   sync.Mutex
	refs int
}

func NewOrderLocks() *OrderLocks {
	return &OrderLocks{m: make(map[uint]*orderLock)}
}

// Lock blocks until the order's lock is held and returns the unlock func.
// Entries are reference counted and dropped once nobody holds or waits on
// them, so the registry does not grow with every order ever touched.
func (l *OrderLocks) Lock(orderID uint) func() {
	l.mu.Lock()
	e := l.m[orderID]
	if e == nil {
		e = &orderLock{}
		l.m[orderID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.m, orderID)
		}
		l.mu.Unlock()
	}
}

func (l *OrderLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}
