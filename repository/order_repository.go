package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/khoalevan2535/Goldenbamboo-sub001/entity"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderWithItems(orderID uint) (*entity.Order, error) {
	o, err := r.GetOrder(orderID)
	if err != nil || o == nil {
		return o, err
	}
	items, err := r.GetOrderItems(orderID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

type OrderSummary struct {
	ID        uint               `json:"id"`
	TableID   *uint              `json:"tableId,omitempty"`
	Total     int64              `json:"total"`
	Status    entity.OrderStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForBranch(branchID uint, status *entity.OrderStatus, page, limit int) ([]OrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	q := r.DB.Model(&entity.Order{}).Where("branch_id = ?", branchID)
	if status != nil && *status != "" {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []OrderSummary
	err := q.Select("id, table_id, total, status, created_at").
		Order("id DESC").Limit(limit).Offset(offset).
		Scan(&out).Error
	return out, total, err
}

// UpdateStatusGuard flips the order status only when the row still holds the
// expected current status; rows affected tells the caller who won the race.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) UpdateTotals(tx *gorm.DB, orderID uint, subTotal, discountTotal, total int64) error {
	return tx.Model(&entity.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"sub_total":      subTotal,
			"discount_total": discountTotal,
			"total":          total,
		}).Error
}

// ---------------- Order items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrderItem(orderID, itemID uint) (*entity.OrderItem, error) {
	var oi entity.OrderItem
	err := r.DB.Where("id = ? AND order_id = ?", itemID, orderID).First(&oi).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &oi, nil
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Model(&entity.OrderItem{}).
		Select("id, created_at, updated_at, qty, unit_price, total, discount_amount, final_price, status, note, completed_at, order_id, dish_id, combo_id, discount_id").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

func (r *OrderRepository) UpdateOrderItem(tx *gorm.DB, itemID uint, fields map[string]any) error {
	return tx.Model(&entity.OrderItem{}).Where("id = ?", itemID).Updates(fields).Error
}

// UpdateItemStatusGuard is the item counterpart of UpdateStatusGuard.
func (r *OrderRepository) UpdateItemStatusGuard(tx *gorm.DB, itemID uint, from, to entity.OrderItemStatus, completedAt *time.Time) (int64, error) {
	fields := map[string]any{"status": to}
	if completedAt != nil {
		fields["completed_at"] = completedAt
	}
	res := tx.Model(&entity.OrderItem{}).
		Where("id = ? AND status = ?", itemID, from).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// DeleteOrderItem removes the row for good; removal is only allowed before
// the kitchen accepts the item, so no soft-delete trail is kept.
func (r *OrderRepository) DeleteOrderItem(tx *gorm.DB, itemID uint) error {
	return tx.Unscoped().Delete(&entity.OrderItem{}, itemID).Error
}

// ---------------- Validations / helpers ----------------

func (r *OrderRepository) BranchExists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Branch{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
