package model

type Staff struct {
	StaffId int64  `gorm:"column:staff_id;primaryKey;autoIncrement"`
	Name    string `gorm:"type:varchar(100);not null"`
	Role    string `gorm:"type:varchar(50)"`
}

func (Staff) TableName() string {
	return "staff"
}

type Customer struct {
	CustomerId int64  `gorm:"column:customer_id;primaryKey;autoIncrement"`
	Name       string `gorm:"type:varchar(100);not null"`
	Phone      string `gorm:"type:varchar(20)"`
	Email      string `gorm:"type:varchar(120)"`
	Address    string `gorm:"type:varchar(200)"`
}

func (Customer) TableName() string {
	return "customer"
}
