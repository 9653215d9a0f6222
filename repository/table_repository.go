package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/khoalevan2535/Goldenbamboo-sub001/entity"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) GetTable(tableID uint) (*entity.Table, error) {
	var t entity.Table
	if err := r.DB.First(&t, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) ListForBranch(branchID uint) ([]entity.Table, error) {
	var tables []entity.Table
	err := r.DB.Where("branch_id = ?", branchID).Order("number").Find(&tables).Error
	return tables, err
}

// Claim seats an order at the table with a single conditional write: the row
// flips to OCCUPIED only if it is still claimable, so two concurrent claims
// can never both win. Rows affected 0 means someone else holds it.
func (r *TableRepository) Claim(tx *gorm.DB, tableID, orderID uint) (int64, error) {
	res := tx.Model(&entity.Table{}).
		Where("id = ? AND status IN ?", tableID, []entity.TableStatus{entity.TableAvailable, entity.TableReserved}).
		Updates(map[string]any{
			"status":           entity.TableOccupied,
			"current_order_id": orderID,
		})
	return res.RowsAffected, res.Error
}

// Release frees the table into CLEANING, but only if the given order still
// holds it. A second release matches zero rows and is a no-op.
func (r *TableRepository) Release(tx *gorm.DB, tableID, orderID uint) (int64, error) {
	res := tx.Model(&entity.Table{}).
		Where("id = ? AND current_order_id = ?", tableID, orderID).
		Updates(map[string]any{
			"status":           entity.TableCleaning,
			"current_order_id": nil,
		})
	return res.RowsAffected, res.Error
}

func (r *TableRepository) SetStatus(tableID uint, status entity.TableStatus) error {
	return r.DB.Model(&entity.Table{}).
		Where("id = ?", tableID).
		Updates(map[string]any{
			"status":           status,
			"current_order_id": nil,
		}).Error
}
