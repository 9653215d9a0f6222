package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/khoalevan2535/Goldenbamboo-sub001/entity"
)

type AccountRepository struct {
	DB *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

func (r *AccountRepository) FindByUsername(username string) (*entity.Account, error) {
	var a entity.Account
	err := r.DB.Where("username = ?", username).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
