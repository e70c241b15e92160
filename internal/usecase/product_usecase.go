package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ProductUseCase реализует бизнес-логику жизненного цикла товаров:
// проверку уникальности, нормализацию полей, частичное обновление
// и классификацию ошибок хранилища.
type ProductUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	dbPool       transaction.Transactional
	logger       logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		dbPool:       dbPool,
		logger:       logger,
	}
}

// ListProducts возвращает все товары каталога без фильтрации.
func (p *ProductUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductUseCase.ListProducts"

	products, err := p.productRepo.GetAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// GetProduct возвращает товар по идентификатору.
func (p *ProductUseCase) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "ProductUseCase.GetProduct"

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(op, e.ErrProductNotFound)
		}

		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// CreateProduct создает товар с принудительным is_active=true.
// Предварительная проверка уникальности name/sku даёт понятное сообщение об ошибке,
// уникальные индексы БД остаются последней линией защиты от гонок.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.CreateProduct"

	name := strings.TrimSpace(req.Name)
	sku := normalizeSKU(req.SKU)

	var err error
	if err = validateCreateReq(name, sku, req); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	existing, err := p.productRepo.GetByNameOrSKU(ctx, name, sku)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if existing != nil {
		err = e.ErrProductExists
		return nil, e.Wrap(op, err)
	}

	created, err := p.productRepo.Insert(ctx, domain.NewProduct(name, sku, req.Quantity, req.Price, req.CategoryID))
	if err != nil {
		if isConstraintViolation(err) {
			p.logger.Warnf("Insert constraint violation. name: %s, sku: %s: %v", name, sku, err)
			err = e.ErrAddProductFailed
		}

		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// UpdateProduct выполняет частичное обновление товара по идентификатору.
// Применяются только «непустые» поля патча, см. UpdateProductReq.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, id int64, patch *UpdateProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	var err error
	if patch.Quantity < 0 {
		err = e.ErrQuantityNegative
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = e.ErrProductNotFound
		}

		return nil, e.Wrap(op, err)
	}

	applyPatch(product, patch)

	updated, err := p.productRepo.Update(ctx, product)
	if err != nil {
		if isConstraintViolation(err) {
			p.logger.Warnf("Update constraint violation. id: %d: %v", id, err)
			err = e.ErrUpdateProductFailed
		}

		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// DeleteProduct удаляет товар и возвращает снимок строки на момент удаления.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "ProductUseCase.DeleteProduct"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = e.ErrProductNotFound
		}

		return nil, e.Wrap(op, err)
	}

	if err = p.productRepo.Delete(ctx, id); err != nil {
		if isConstraintViolation(err) {
			p.logger.Warnf("Delete constraint violation. id: %d: %v", id, err)
			err = e.ErrDeleteProductFailed
		}

		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// ListCategories возвращает справочник категорий (только чтение).
func (p *ProductUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "ProductUseCase.ListCategories"

	categories, err := p.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

// applyPatch переносит на товар только «непустые» поля патча.
// name обрезается по краям, sku дополнительно приводится к нижнему регистру.
func applyPatch(product *domain.Product, patch *UpdateProductReq) {
	if name := strings.TrimSpace(patch.Name); name != "" {
		product.Name = name
	}
	if sku := normalizeSKU(patch.SKU); sku != "" {
		product.SKU = sku
	}
	if patch.Quantity != 0 {
		product.Quantity = patch.Quantity
	}
	if patch.IsActive {
		product.IsActive = true
	}
	if patch.Price != 0 {
		product.Price = patch.Price
	}
	if patch.CategoryID != 0 {
		product.CategoryID = patch.CategoryID
	}
}

// normalizeSKU приводит артикул к каноническому виду хранения.
func normalizeSKU(sku string) string {
	return strings.ToLower(strings.TrimSpace(sku))
}

// validateCreateReq проверяет корректность входных данных запроса на создание товара.
func validateCreateReq(name, sku string, req *CreateProductReq) error {
	if name == "" {
		return e.ErrProductNameRequired
	}

	if sku == "" {
		return e.ErrProductSKURequired
	}

	if req.Quantity < 0 {
		return e.ErrQuantityNegative
	}

	if req.Price < 0 {
		return e.ErrInvalidPrice
	}

	if req.CategoryID <= 0 {
		return e.ErrCategoryRequired
	}

	return nil
}

// isConstraintViolation сообщает, является ли ошибка нарушением ограничения целостности
// (класс 23: уникальные индексы, внешние ключи).
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}

	return false
}
