package services

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/khoalevan2535/Goldenbamboo-sub001/entity"
	"github.com/khoalevan2535/Goldenbamboo-sub001/pkg/apperr"
	"github.com/khoalevan2535/Goldenbamboo-sub001/repository"
	"github.com/khoalevan2535/Goldenbamboo-sub001/ws"
)

// OrderService is the composition root for the order lifecycle: it claims
// the table, snapshots prices, drives status transitions and fans events out
// to the branch channel once the transaction has committed.
type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	Menu      *repository.MenuRepository
	Discounts *repository.DiscountRepository
	Tables    *TableService
	Pricing   *PricingService
	Hub       *ws.EventHub
	Locks     *OrderLocks
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	menu *repository.MenuRepository,
	discounts *repository.DiscountRepository,
	tables *TableService,
	pricing *PricingService,
	hub *ws.EventHub,
	locks *OrderLocks,
) *OrderService {
	return &OrderService{
		DB: db, Repo: repo, Menu: menu, Discounts: discounts,
		Tables: tables, Pricing: pricing, Hub: hub, Locks: locks,
	}
}

// ----- DTOs from controller -----

type ItemIn struct {
	DishID  *uint  `json:"dishId"`
	ComboID *uint  `json:"comboId"`
	Qty     int    `json:"qty" binding:"required,min=1"`
	Note    string `json:"note"`
}

type CreateOrderReq struct {
	BranchID      uint     `json:"branchId" binding:"required"`
	TableID       *uint    `json:"tableId"` // nil for delivery orders
	VoucherCode   string   `json:"voucherCode"`
	CustomerName  string   `json:"customerName"`
	CustomerPhone string   `json:"customerPhone"`
	Items         []ItemIn `json:"items" binding:"required,min=1"`
}

// ----- Create -----

func (s *OrderService) Create(req *CreateOrderReq) (*entity.Order, error) {
	if len(req.Items) == 0 {
		return nil, errors.New("items is required")
	}
	ok, err := s.Repo.BranchExists(req.BranchID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("branch", req.BranchID)
	}

	voucher, err := s.lookupVoucher(req.VoucherCode)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]entity.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		oi, err := buildLineItem(s.Menu, s.Discounts, s.Pricing, req.BranchID, in, voucher, now)
		if err != nil {
			return nil, err
		}
		items = append(items, *oi)
	}
	sub, disc, total := sumTotals(items)

	var order entity.Order
	def := s.Hub.Deferred(ws.BranchChannel(req.BranchID))
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order = entity.Order{
			Status:        entity.OrderCreated,
			SubTotal:      sub,
			DiscountTotal: disc,
			Total:         total,
			VoucherCode:   req.VoucherCode,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			BranchID:      req.BranchID,
			TableID:       req.TableID,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		// delivery orders carry no table, nothing to claim
		if req.TableID != nil {
			if err := s.Tables.Claim(tx, *req.TableID, order.ID); err != nil {
				return err
			}
		}

		for i := range items {
			items[i].OrderID = order.ID
			if err := s.Repo.CreateOrderItem(tx, &items[i]); err != nil {
				return err
			}
		}

		def.Add(ws.EventOrderCreated, map[string]any{
			"orderId": order.ID,
			"tableId": req.TableID,
			"status":  order.Status,
			"total":   order.Total,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	def.Flush()

	order.Items = items
	return &order, nil
}

func (s *OrderService) lookupVoucher(code string) (*entity.Discount, error) {
	if code == "" {
		return nil, nil
	}
	v, err := s.Discounts.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, &apperr.NotFoundError{Kind: "voucher " + code}
	}
	return v, nil
}

// ----- Transitions -----

// Transition applies one edge of the order state machine. Requesting the
// status the order is already in is a no-op success (idempotent retry), not
// an error, and emits nothing.
func (s *OrderService) Transition(orderID uint, target entity.OrderStatus) (*entity.Order, error) {
	unlock := s.Locks.Lock(orderID)
	defer unlock()
	return s.transitionLocked(orderID, target)
}

func (s *OrderService) transitionLocked(orderID uint, target entity.OrderStatus) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("order", orderID)
	}
	if o.Status == target {
		return s.Repo.GetOrderWithItems(orderID)
	}
	if !target.Valid() || !orderEdgeAllowed(o.Status, target) {
		return nil, invalidOrderTransition(o.Status, target)
	}

	def := s.Hub.Deferred(ws.BranchChannel(o.BranchID))
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, o.Status, target)
		if err != nil {
			return err
		}
		if affected == 0 {
			return invalidOrderTransition(o.Status, target)
		}

		// terminal orders give the table back; it lands in CLEANING, a
		// manual step brings it back to AVAILABLE
		if target.Terminal() && o.TableID != nil {
			if err := s.Tables.Release(tx, *o.TableID, orderID); err != nil {
				return err
			}
		}

		def.Add(ws.EventOrderStatusChanged, map[string]any{
			"orderId": orderID,
			"tableId": o.TableID,
			"status":  target,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	def.Flush()

	return s.Repo.GetOrderWithItems(orderID)
}

// Pay moves the order to PAID after revalidating its total against the sum
// of current item final prices; a stale client-submitted total is rejected,
// the server-side computation always wins.
func (s *OrderService) Pay(orderID uint, submittedTotal *int64) (*entity.Order, error) {
	unlock := s.Locks.Lock(orderID)
	defer unlock()

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("order", orderID)
	}

	items, err := s.Repo.GetOrderItems(orderID)
	if err != nil {
		return nil, err
	}
	sub, disc, total := sumTotals(items)

	if submittedTotal != nil && *submittedTotal != total {
		perr := &apperr.PricingInconsistencyError{OrderID: orderID, Submitted: *submittedTotal, Computed: total}
		log.Printf("payment rejected: %v", perr)
		return nil, perr
	}

	if o.Status == entity.OrderPaid {
		return s.Repo.GetOrderWithItems(orderID)
	}
	if !orderEdgeAllowed(o.Status, entity.OrderPaid) {
		return nil, invalidOrderTransition(o.Status, entity.OrderPaid)
	}

	def := s.Hub.Deferred(ws.BranchChannel(o.BranchID))
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, o.Status, entity.OrderPaid)
		if err != nil {
			return err
		}
		if affected == 0 {
			return invalidOrderTransition(o.Status, entity.OrderPaid)
		}

		if o.Total != total {
			log.Printf("order %d stored total %d drifted from computed %d, repairing", orderID, o.Total, total)
		}
		if err := s.Repo.UpdateTotals(tx, orderID, sub, disc, total); err != nil {
			return err
		}

		def.Add(ws.EventOrderStatusChanged, map[string]any{
			"orderId": orderID,
			"tableId": o.TableID,
			"status":  entity.OrderPaid,
		})
		def.Add(ws.EventOrderPaid, map[string]any{
			"orderId": orderID,
			"total":   total,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	def.Flush()

	return s.Repo.GetOrderWithItems(orderID)
}

// ----- Views -----

func (s *OrderService) Detail(orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrderWithItems(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("order", orderID)
	}
	return o, nil
}

func (s *OrderService) ListForBranch(branchID uint, status *entity.OrderStatus, page, limit int) ([]repository.OrderSummary, int64, error) {
	return s.Repo.ListOrdersForBranch(branchID, status, page, limit)
}

// ----- Totals -----

// sumTotals derives the order totals from its items; cancelled items no
// longer count. The order total is always this sum, never a stored value
// trusted on its own.
func sumTotals(items []entity.OrderItem) (sub, disc, total int64) {
	for _, it := range items {
		if it.Status == entity.ItemCancelled {
			continue
		}
		sub += it.Total
		disc += it.DiscountAmount
		total += it.FinalPrice
	}
	return
}

func recomputeTotals(tx *gorm.DB, repo *repository.OrderRepository, orderID uint) error {
	var items []entity.OrderItem
	if err := tx.Model(&entity.OrderItem{}).
		Select("total, discount_amount, final_price, status").
		Where("order_id = ?", orderID).
		Find(&items).Error; err != nil {
		return err
	}
	sub, disc, total := sumTotals(items)
	return repo.UpdateTotals(tx, orderID, sub, disc, total)
}
