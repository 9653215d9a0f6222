package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/khoalevan2535/Goldenbamboo-sub001/entity"
)

// MenuRepository gives the order core read access to the catalog the menu
// service owns; only id, price and owning branch matter here.
type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) GetDishBasics(id uint) (*entity.Dish, error) {
	var d entity.Dish
	err := r.DB.Select("id, name, base_price, branch_id").First(&d, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *MenuRepository) GetComboBasics(id uint) (*entity.Combo, error) {
	var c entity.Combo
	err := r.DB.Select("id, name, base_price, branch_id").First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
