package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoalevan2535/Goldenbamboo-sub001/entity"
	"github.com/khoalevan2535/Goldenbamboo-sub001/pkg/apperr"
)

func TestClaimAndRelease(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.tables.Claim(env.db, env.table5.ID, 77))

	table := env.reloadTable(t, env.table5.ID)
	assert.Equal(t, entity.TableOccupied, table.Status)
	require.NotNil(t, table.CurrentOrderID)
	assert.Equal(t, uint(77), *table.CurrentOrderID)

	// second claim loses and names the holder
	err := env.tables.Claim(env.db, env.table5.ID, 78)
	var conflict *apperr.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, env.table5.ID, conflict.TableID)
	assert.Equal(t, uint(77), conflict.OrderID)

	// release lands in CLEANING, not AVAILABLE
	require.NoError(t, env.tables.Release(env.db, env.table5.ID, 77))
	table = env.reloadTable(t, env.table5.ID)
	assert.Equal(t, entity.TableCleaning, table.Status)
	assert.Nil(t, table.CurrentOrderID)

	// releasing again is a no-op, not an error
	require.NoError(t, env.tables.Release(env.db, env.table5.ID, 77))
}

func TestClaimFromReserved(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Model(&entity.Table{}).Where("id = ?", env.table5.ID).
		Update("status", entity.TableReserved).Error)

	require.NoError(t, env.tables.Claim(env.db, env.table5.ID, 5))
	assert.Equal(t, entity.TableOccupied, env.reloadTable(t, env.table5.ID).Status)
}

func TestClaimUnclaimableStatuses(t *testing.T) {
	env := newTestEnv(t)
	for _, status := range []entity.TableStatus{entity.TableCleaning, entity.TableInactive} {
		require.NoError(t, env.db.Model(&entity.Table{}).Where("id = ?", env.table5.ID).
			Update("status", status).Error)

		err := env.tables.Claim(env.db, env.table5.ID, 5)
		var conflict *apperr.ConflictError
		assert.ErrorAs(t, err, &conflict, "status %s", status)
	}
}

func TestConcurrentClaimsOneWinner(t *testing.T) {
	env := newTestEnv(t)

	const n = 10
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = env.tables.Claim(env.db, env.table5.ID, uint(100+i))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			var conflict *apperr.ConflictError
			assert.ErrorAs(t, err, &conflict)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestOverrideStatusIdempotent(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.tables.Claim(env.db, env.table5.ID, 9))

	table, err := env.tables.OverrideStatus(env.table5.ID, entity.TableAvailable, "account 1")
	require.NoError(t, err)
	assert.Equal(t, entity.TableAvailable, table.Status)

	// repeating is a no-op success
	table, err = env.tables.OverrideStatus(env.table5.ID, entity.TableAvailable, "account 1")
	require.NoError(t, err)
	assert.Equal(t, entity.TableAvailable, table.Status)
}

func TestOverrideUnknownTable(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.tables.OverrideStatus(9999, entity.TableAvailable, "account 1")
	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
