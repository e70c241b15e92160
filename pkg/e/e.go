package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// 400 Bad Request — конфликты каталога
	ErrProductExists       = fmt.Errorf("a product with the same name or sku already exists")
	ErrAddProductFailed    = fmt.Errorf("a database error occurred while adding the product")
	ErrUpdateProductFailed = fmt.Errorf("a database error occurred while updating the product")
	ErrDeleteProductFailed = fmt.Errorf("a database error occurred while deleting the product")

	// 400 Bad Request — валидация
	ErrProductNameRequired = fmt.Errorf("product name is required")
	ErrProductSKURequired  = fmt.Errorf("product sku is required")
	ErrQuantityNegative    = fmt.Errorf("quantity must not be negative")
	ErrCategoryRequired    = fmt.Errorf("category_id is required")
	ErrInvalidPrice        = fmt.Errorf("invalid price")
	ErrPricePrecision      = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidProductID    = fmt.Errorf("invalid product id")
	ErrInvalidRequestBody  = fmt.Errorf("invalid request body")
	ErrStatusBadRequest    = fmt.Errorf("bad request")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
