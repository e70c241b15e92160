package usecase

// PRODUCT USECASE

// CreateProductReq — запрос на создание товара.
// Цена передаётся в копейках, нормализация name/sku выполняется в usecase.
type CreateProductReq struct {
	Name       string
	SKU        string
	Quantity   int64
	Price      int64
	CategoryID int64
}

// UpdateProductReq — частичное обновление товара.
// Нулевые значения полей трактуются как «поле не передано» и не применяются,
// поэтому через PATCH нельзя выставить quantity=0, price=0 или is_active=false.
type UpdateProductReq struct {
	Name       string
	SKU        string
	Quantity   int64
	IsActive   bool
	Price      int64
	CategoryID int64
}

// MAPPERS

func NewCreateProductReq(name, sku string, quantity, price, categoryID int64) *CreateProductReq {
	return &CreateProductReq{
		Name:       name,
		SKU:        sku,
		Quantity:   quantity,
		Price:      price,
		CategoryID: categoryID,
	}
}

func NewUpdateProductReq(name, sku string, quantity int64, isActive bool, price, categoryID int64) *UpdateProductReq {
	return &UpdateProductReq{
		Name:       name,
		SKU:        sku,
		Quantity:   quantity,
		IsActive:   isActive,
		Price:      price,
		CategoryID: categoryID,
	}
}
