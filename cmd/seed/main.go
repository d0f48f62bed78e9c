package main

import (
	"log"
	"os"
	"time"

	"pos-intelligence-be/internal/model"
	"pos-intelligence-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding sample POS data...")

	seed(db, []model.OrderStatus{
		{StatusId: 1, StatusName: "Success"},
		{StatusId: 2, StatusName: "Delayed"},
		{StatusId: 3, StatusName: "Cancelled"},
	})

	seed(db, []model.Courier{
		{CourierId: 1, ServiceName: "Domex", ContactNumber: "0118765432"},
		{CourierId: 2, ServiceName: "Koombiyo", ContactNumber: "0112345678"},
	})

	seed(db, []model.Staff{
		{StaffId: 1, Name: "Arosha Fernando", Role: "Manager"},
		{StaffId: 2, Name: "Kasun Perera", Role: "Cashier"},
	})

	seed(db, []model.Customer{
		{CustomerId: 5, Name: "Nilanthi Silva", Phone: "0771234567", Email: "nilanthi@email.com", Address: "Colombo 03"},
		{CustomerId: 6, Name: "Ruwan Jayasinghe", Phone: "0719876543", Email: "ruwan@email.com", Address: "Kandy"},
	})

	seed(db, []model.Product{
		{ProductId: 1, Name: "iPhone 15 128GB", CategoryId: 1, Brand: "Apple", CurrentPrice: 192000.00, PolicyId: 1},
		{ProductId: 2, Name: "Samsung Galaxy S24 256GB", CategoryId: 1, Brand: "Samsung", CurrentPrice: 385000.00, PolicyId: 1},
		{ProductId: 3, Name: "Google Pixel 7a", CategoryId: 1, Brand: "Google", CurrentPrice: 145000.00, PolicyId: 1},
		{ProductId: 4, Name: "Xiaomi 14 256GB", CategoryId: 1, Brand: "Xiaomi", CurrentPrice: 215000.00, PolicyId: 1},
	})

	seed(db, []model.Stock{
		{ProductId: 1, Quantity: 15},
		{ProductId: 2, Quantity: 8},
		{ProductId: 3, Quantity: 22},
		{ProductId: 4, Quantity: 0},
	})

	orderDate := func(day int) time.Time {
		return time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC)
	}
	seed(db, []model.Order{
		{OrderId: 116, CustomerId: 6, StaffId: 1, CourierId: 1, TotalPrice: 145000.00, OrderDate: orderDate(3), StatusId: 2},
		{OrderId: 117, CustomerId: 5, StaffId: 2, CourierId: 1, TotalPrice: 192000.00, OrderDate: orderDate(4), StatusId: 1},
		{OrderId: 118, CustomerId: 5, StaffId: 2, CourierId: 2, TotalPrice: 385000.00, OrderDate: orderDate(5), StatusId: 2},
	})

	seed(db, []model.OrderItem{
		{OrderId: 116, ProductId: 3, Quantity: 1, PriceAtSale: 145000.00},
		{OrderId: 117, ProductId: 1, Quantity: 1, PriceAtSale: 192000.00},
		{OrderId: 118, ProductId: 2, Quantity: 1, PriceAtSale: 385000.00},
	})

	seed(db, []model.PriceChangeLog{
		{LogId: 1, ProductId: 4, PreviousPrice: 209800.00, NewPrice: 215000.00, ChangeReason: "Tax increase", ChangeDate: orderDate(7)},
	})

	log.Println("✅ Seeding completed")
}

func seed[T any](db *gorm.DB, rows []T) {
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		log.Fatalf("Error: Failed to seed %T: %v", rows, err)
	}
}
