package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/khoalevan2535/Goldenbamboo-sub001/entity"
)

type DiscountRepository struct {
	DB *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) *DiscountRepository {
	return &DiscountRepository{DB: db}
}

// FindForDish returns the automatic (code-less) branch discount attached to
// a dish, newest first. Window and status checks belong to the resolver.
func (r *DiscountRepository) FindForDish(dishID uint) (*entity.Discount, error) {
	return r.findAutomatic("dish_id = ?", dishID)
}

func (r *DiscountRepository) FindForCombo(comboID uint) (*entity.Discount, error) {
	return r.findAutomatic("combo_id = ?", comboID)
}

func (r *DiscountRepository) findAutomatic(cond string, id uint) (*entity.Discount, error) {
	var d entity.Discount
	err := r.DB.Where(cond, id).Where("code IS NULL").
		Order("id DESC").First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// FindByCode looks up a customer-entered voucher.
func (r *DiscountRepository) FindByCode(code string) (*entity.Discount, error) {
	var d entity.Discount
	err := r.DB.Where("code = ?", code).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}
