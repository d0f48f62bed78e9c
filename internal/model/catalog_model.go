package model

import (
	"time"
)

type Product struct {
	ProductId    int64   `gorm:"column:product_id;primaryKey;autoIncrement"`
	Name         string  `gorm:"type:varchar(150);not null;index"`
	CategoryId   int64   `gorm:"column:category_id"`
	Brand        string  `gorm:"type:varchar(80)"`
	CurrentPrice float64 `gorm:"column:current_price;type:numeric(12,2)"`
	PolicyId     int64   `gorm:"column:policy_id"`
}

func (Product) TableName() string {
	return "product"
}

type Stock struct {
	ProductId   int64     `gorm:"column:product_id;primaryKey"`
	Quantity    int       `gorm:"not null;default:0"`
	LastUpdated time.Time `gorm:"column:last_updated;autoUpdateTime"`
}

func (Stock) TableName() string {
	return "stock"
}

type PriceChangeLog struct {
	LogId         int64     `gorm:"column:log_id;primaryKey;autoIncrement"`
	ProductId     int64     `gorm:"column:product_id;index"`
	PreviousPrice float64   `gorm:"column:previous_price;type:numeric(12,2)"`
	NewPrice      float64   `gorm:"column:new_price;type:numeric(12,2)"`
	ChangeReason  string    `gorm:"column:change_reason;type:varchar(200)"`
	ChangeDate    time.Time `gorm:"column:change_date"`
}

func (PriceChangeLog) TableName() string {
	return "price_change_log"
}
