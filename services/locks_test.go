package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderLocksMutualExclusion(t *testing.T) {
	locks := NewOrderLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(7)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestOrderLocksDropUncontendedEntries(t *testing.T) {
	locks := NewOrderLocks()

	unlock := locks.Lock(1)
	unlock2 := locks.Lock(2)
	assert.Equal(t, 2, locks.size())

	unlock()
	assert.Equal(t, 1, locks.size())
	unlock2()
	assert.Equal(t, 0, locks.size())

	// contended entries survive until the last holder lets go
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u := locks.Lock(3)
			u()
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, locks.size())
}
