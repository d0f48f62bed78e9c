package model

import (
	"time"
)

// Order maps to the "order" table. The name is a reserved word in Postgres,
// so every generated query must double-quote it (see the SQL generation
// prompt rules in internal/constant).
type Order struct {
	OrderId    int64     `gorm:"column:order_id;primaryKey;autoIncrement"`
	CustomerId int64     `gorm:"column:customer_id;index"`
	StaffId    int64     `gorm:"column:staff_id"`
	CourierId  int64     `gorm:"column:courier_id;index"`
	TotalPrice float64   `gorm:"column:total_price;type:numeric(12,2)"`
	OrderDate  time.Time `gorm:"column:order_date;type:date"`
	StatusId   int64     `gorm:"column:status_id;index"`
}

func (Order) TableName() string {
	return "order"
}

type OrderItem struct {
	OrderId     int64   `gorm:"column:order_id;primaryKey"`
	ProductId   int64   `gorm:"column:product_id;primaryKey"`
	Quantity    int     `gorm:"not null;default:1"`
	PriceAtSale float64 `gorm:"column:price_at_sale;type:numeric(12,2)"`
}

func (OrderItem) TableName() string {
	return "order_item"
}

type OrderStatus struct {
	StatusId   int64  `gorm:"column:status_id;primaryKey;autoIncrement"`
	StatusName string `gorm:"column:status_name;type:varchar(50);not null"`
}

func (OrderStatus) TableName() string {
	return "order_status"
}

type Courier struct {
	CourierId     int64  `gorm:"column:courier_id;primaryKey;autoIncrement"`
	ServiceName   string `gorm:"column:service_name;type:varchar(100);not null"`
	ContactNumber string `gorm:"column:contact_number;type:varchar(20)"`
}

func (Courier) TableName() string {
	return "courier"
}
