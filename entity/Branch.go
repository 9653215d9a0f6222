package entity

import (
	"gorm.io/gorm"
)

type Branch struct {
	gorm.Model
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`

	Tables []Table `json:"-"` // preload only on the table board
	Orders []Order `json:"-"`
}
