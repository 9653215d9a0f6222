package services

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/khoalevan2535/Goldenbamboo-sub001/entity"
	"github.com/khoalevan2535/Goldenbamboo-sub001/repository"
	"github.com/khoalevan2535/Goldenbamboo-sub001/ws"
)

type testEnv struct {
	db     *gorm.DB
	hub    *ws.EventHub
	orders *OrderService
	items  *OrderItemService
	tables *TableService

	branch entity.Branch
	table5 entity.Table
	pho    entity.Dish // 100,000
	rolls  entity.Dish // 60,000
	combo  entity.Combo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Per-test temp-file DB: shared-cache in-memory sqlite returns
	// SQLITE_LOCKED under concurrent writers, which _busy_timeout does not
	// retry; file-backed sqlite yields SQLITE_BUSY, which it does.
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.Branch{}, &entity.Table{},
		&entity.Dish{}, &entity.Combo{},
		&entity.Discount{},
		&entity.Order{}, &entity.OrderItem{},
	))

	env := &testEnv{db: db, hub: ws.NewEventHub()}

	env.branch = entity.Branch{Name: "test branch"}
	require.NoError(t, db.Create(&env.branch).Error)

	env.table5 = entity.Table{Number: 5, Status: entity.TableAvailable, BranchID: env.branch.ID}
	require.NoError(t, db.Create(&env.table5).Error)

	env.pho = entity.Dish{Name: "Pho Bo", BasePrice: 100000, BranchID: env.branch.ID}
	env.rolls = entity.Dish{Name: "Spring Rolls", BasePrice: 60000, BranchID: env.branch.ID}
	require.NoError(t, db.Create(&env.pho).Error)
	require.NoError(t, db.Create(&env.rolls).Error)

	env.combo = entity.Combo{Name: "Family Set", BasePrice: 350000, BranchID: env.branch.ID}
	require.NoError(t, db.Create(&env.combo).Error)

	orderRepo := repository.NewOrderRepository(db)
	tableRepo := repository.NewTableRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	pricing := NewPricingService()
	locks := NewOrderLocks()

	env.tables = NewTableService(db, tableRepo, env.hub)
	env.orders = NewOrderService(db, orderRepo, menuRepo, discountRepo, env.tables, pricing, env.hub, locks)
	env.items = NewOrderItemService(db, orderRepo, menuRepo, discountRepo, pricing, env.hub, locks)
	return env
}

func (e *testEnv) activeDiscountFor(t *testing.T, dishID *uint, comboID *uint, newPrice int64, code *string) entity.Discount {
	t.Helper()
	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)
	d := entity.Discount{
		Code:     code,
		NewPrice: newPrice,
		StartAt:  &start,
		EndAt:    &end,
		Status:   entity.DiscountActive,
		DishID:   dishID,
		ComboID:  comboID,
		BranchID: e.branch.ID,
	}
	require.NoError(t, e.db.Create(&d).Error)
	return d
}

func (e *testEnv) reloadTable(t *testing.T, id uint) entity.Table {
	t.Helper()
	var table entity.Table
	require.NoError(t, e.db.First(&table, id).Error)
	return table
}

// fakeConn stands in for a websocket connection so tests can watch the
// branch channel. Write-failure eviction itself is covered in the ws
// package tests.
type fakeConn struct {
	mu     sync.Mutex
	events []ws.Event
}

func (f *fakeConn) WriteJSON(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, v.(ws.Event))
	return nil
}

func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (f *fakeConn) Close() error { return nil }

func (f *fakeConn) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev.Name)
	}
	return out
}
