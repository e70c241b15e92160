package domain

import "time"

// Product описывает товар каталога
type Product struct {
	ID         int64
	Name       string
	SKU        string // хранится в нижнем регистре без пробелов по краям
	Quantity   int64
	IsActive   bool
	Price      int64 // Цена хранится в копейках
	CategoryID int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewProduct(name, sku string, quantity, price, categoryID int64) *Product {
	return &Product{
		Name:       name,
		SKU:        sku,
		Quantity:   quantity,
		IsActive:   true,
		Price:      price,
		CategoryID: categoryID,
	}
}
