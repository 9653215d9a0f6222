package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/khoalevan2535/Goldenbamboo-sub001/entity"
	"github.com/khoalevan2535/Goldenbamboo-sub001/pkg/apperr"
	"github.com/khoalevan2535/Goldenbamboo-sub001/repository"
	"github.com/khoalevan2535/Goldenbamboo-sub001/ws"
)

// OrderItemService drives the kitchen workflow of a single line item.
// Item transitions run independently of the order status, except that a
// terminal order freezes its items.
type OrderItemService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	Menu      *repository.MenuRepository
	Discounts *repository.DiscountRepository
	Pricing   *PricingService
	Hub       *ws.EventHub
	Locks     *OrderLocks
}

func NewOrderItemService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	menu *repository.MenuRepository,
	discounts *repository.DiscountRepository,
	pricing *PricingService,
	hub *ws.EventHub,
	locks *OrderLocks,
) *OrderItemService {
	return &OrderItemService{
		DB: db, Repo: repo, Menu: menu, Discounts: discounts,
		Pricing: pricing, Hub: hub, Locks: locks,
	}
}

type ItemPatch struct {
	Qty  *int    `json:"qty" binding:"omitempty,min=1"`
	Note *string `json:"note"`
}

// AddItem appends a line to an order that is still taking items. The unit
// price and any discount are snapshotted here; discount edits after this
// point never reach the item.
func (s *OrderItemService) AddItem(orderID uint, in ItemIn) (*entity.OrderItem, error) {
	unlock := s.Locks.Lock(orderID)
	defer unlock()

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("order", orderID)
	}
	if !o.Status.Editable() {
		return nil, &apperr.InvalidTransitionError{Kind: "order", From: string(o.Status), Op: "adding items"}
	}

	var voucher *entity.Discount
	if o.VoucherCode != "" {
		if voucher, err = s.Discounts.FindByCode(o.VoucherCode); err != nil {
			return nil, err
		}
	}

	oi, err := buildLineItem(s.Menu, s.Discounts, s.Pricing, o.BranchID, in, voucher, time.Now())
	if err != nil {
		return nil, err
	}
	oi.OrderID = orderID

	def := s.Hub.Deferred(ws.BranchChannel(o.BranchID))
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateOrderItem(tx, oi); err != nil {
			return err
		}
		if err := recomputeTotals(tx, s.Repo, orderID); err != nil {
			return err
		}
		def.Add(ws.EventItemAdded, map[string]any{
			"orderId":    orderID,
			"itemId":     oi.ID,
			"status":     oi.Status,
			"finalPrice": oi.FinalPrice,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	def.Flush()
	return oi, nil
}

// UpdateItem changes quantity or note while the item is still PENDING.
// The unit price stays frozen; line totals are rescaled from the snapshot.
func (s *OrderItemService) UpdateItem(orderID, itemID uint, patch ItemPatch) (*entity.OrderItem, error) {
	unlock := s.Locks.Lock(orderID)
	defer unlock()

	o, oi, err := s.loadPair(orderID, itemID)
	if err != nil {
		return nil, err
	}
	if oi.Status != entity.ItemPending {
		return nil, &apperr.InvalidTransitionError{Kind: "order item", From: string(oi.Status), Op: "updates"}
	}

	fields := map[string]any{}
	if patch.Note != nil {
		oi.Note = *patch.Note
		fields["note"] = oi.Note
	}
	if patch.Qty != nil {
		if *patch.Qty < 1 {
			return nil, errors.New("qty must be at least 1")
		}
		perUnitDiscount := oi.DiscountAmount / int64(oi.Qty)
		oi.Qty = *patch.Qty
		oi.Total = oi.UnitPrice * int64(oi.Qty)
		oi.DiscountAmount = perUnitDiscount * int64(oi.Qty)
		oi.FinalPrice = oi.Total - oi.DiscountAmount
		fields["qty"] = oi.Qty
		fields["total"] = oi.Total
		fields["discount_amount"] = oi.DiscountAmount
		fields["final_price"] = oi.FinalPrice
	}
	if len(fields) == 0 {
		return oi, nil
	}

	def := s.Hub.Deferred(ws.BranchChannel(o.BranchID))
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.UpdateOrderItem(tx, itemID, fields); err != nil {
			return err
		}
		if err := recomputeTotals(tx, s.Repo, orderID); err != nil {
			return err
		}
		def.Add(ws.EventItemUpdated, map[string]any{
			"orderId":    orderID,
			"itemId":     itemID,
			"qty":        oi.Qty,
			"finalPrice": oi.FinalPrice,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	def.Flush()
	return oi, nil
}

// ChangeStatus applies one edge of the kitchen workflow. Repeating the
// current status is a no-op success. SERVED stamps completedAt; CANCELLED
// takes the line out of the order totals.
func (s *OrderItemService) ChangeStatus(orderID, itemID uint, target entity.OrderItemStatus) (*entity.OrderItem, error) {
	unlock := s.Locks.Lock(orderID)
	defer unlock()

	o, oi, err := s.loadPair(orderID, itemID)
	if err != nil {
		return nil, err
	}
	if o.Status.Terminal() {
		return nil, &apperr.InvalidTransitionError{Kind: "order", From: string(o.Status), Op: "item status changes"}
	}
	if oi.Status == target {
		return oi, nil
	}
	if !target.Valid() || !itemEdgeAllowed(oi.Status, target) {
		return nil, invalidItemTransition(oi.Status, target)
	}

	var completedAt *time.Time
	if target == entity.ItemServed {
		now := time.Now()
		completedAt = &now
	}

	def := s.Hub.Deferred(ws.BranchChannel(o.BranchID))
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateItemStatusGuard(tx, itemID, oi.Status, target, completedAt)
		if err != nil {
			return err
		}
		if affected == 0 {
			return invalidItemTransition(oi.Status, target)
		}
		if target == entity.ItemCancelled {
			if err := recomputeTotals(tx, s.Repo, orderID); err != nil {
				return err
			}
		}
		def.Add(ws.EventItemStatusChanged, map[string]any{
			"orderId": orderID,
			"itemId":  itemID,
			"status":  target,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	def.Flush()

	oi.Status = target
	oi.CompletedAt = completedAt
	return oi, nil
}

// Remove hard-deletes a line the kitchen has not accepted yet. Anything past
// PENDING must be cancelled through ChangeStatus instead.
func (s *OrderItemService) Remove(orderID, itemID uint) error {
	unlock := s.Locks.Lock(orderID)
	defer unlock()

	o, oi, err := s.loadPair(orderID, itemID)
	if err != nil {
		return err
	}
	if oi.Status != entity.ItemPending {
		return &apperr.InvalidTransitionError{Kind: "order item", From: string(oi.Status), Op: "removal"}
	}

	def := s.Hub.Deferred(ws.BranchChannel(o.BranchID))
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.DeleteOrderItem(tx, itemID); err != nil {
			return err
		}
		if err := recomputeTotals(tx, s.Repo, orderID); err != nil {
			return err
		}
		def.Add(ws.EventItemRemoved, map[string]any{
			"orderId": orderID,
			"itemId":  itemID,
		})
		return nil
	})
	if err != nil {
		return err
	}
	def.Flush()
	return nil
}

func (s *OrderItemService) loadPair(orderID, itemID uint) (*entity.Order, *entity.OrderItem, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, nil, err
	}
	if o == nil {
		return nil, nil, apperr.NotFound("order", orderID)
	}
	oi, err := s.Repo.GetOrderItem(orderID, itemID)
	if err != nil {
		return nil, nil, err
	}
	if oi == nil {
		return nil, nil, apperr.NotFound("order item", itemID)
	}
	return o, oi, nil
}

// buildLineItem validates the target (exactly one of dish/combo, same
// branch), resolves the applicable discount and snapshots the price.
// A voucher that matches the target beats the automatic branch discount.
func buildLineItem(
	menu *repository.MenuRepository,
	discounts *repository.DiscountRepository,
	pricing *PricingService,
	branchID uint,
	in ItemIn,
	voucher *entity.Discount,
	now time.Time,
) (*entity.OrderItem, error) {
	if (in.DishID == nil) == (in.ComboID == nil) {
		return nil, errors.New("item must reference exactly one of dishId or comboId")
	}
	if in.Qty < 1 {
		return nil, errors.New("qty must be at least 1")
	}

	var basePrice int64
	if in.DishID != nil {
		d, err := menu.GetDishBasics(*in.DishID)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, apperr.NotFound("dish", *in.DishID)
		}
		if d.BranchID != branchID {
			return nil, errors.New("dish does not belong to this branch")
		}
		basePrice = d.BasePrice
	} else {
		cb, err := menu.GetComboBasics(*in.ComboID)
		if err != nil {
			return nil, err
		}
		if cb == nil {
			return nil, apperr.NotFound("combo", *in.ComboID)
		}
		if cb.BranchID != branchID {
			return nil, errors.New("combo does not belong to this branch")
		}
		basePrice = cb.BasePrice
	}

	quote := pricing.Resolve(basePrice, in.Qty, in.DishID, in.ComboID, voucher, now)
	if quote.DiscountID == nil {
		var auto *entity.Discount
		var err error
		if in.DishID != nil {
			auto, err = discounts.FindForDish(*in.DishID)
		} else {
			auto, err = discounts.FindForCombo(*in.ComboID)
		}
		if err != nil {
			return nil, err
		}
		quote = pricing.Resolve(basePrice, in.Qty, in.DishID, in.ComboID, auto, now)
	}

	return &entity.OrderItem{
		Qty:            in.Qty,
		UnitPrice:      quote.BasePrice,
		Total:          quote.Total,
		DiscountAmount: quote.DiscountAmount,
		FinalPrice:     quote.FinalPrice,
		Status:         entity.ItemPending,
		Note:           in.Note,
		DishID:         in.DishID,
		ComboID:        in.ComboID,
		DiscountID:     quote.DiscountID,
	}, nil
}
