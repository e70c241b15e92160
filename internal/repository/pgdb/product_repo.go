package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
// Читающие запросы участвуют в транзакции из контекста, если она открыта,
// мутирующие — выполняются строго внутри транзакции.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

const productColumns = "id, name, sku, quantity, is_active, price, category_id, created_at, updated_at"

// GetByID возвращает товар по первичному ключу.
// Отсутствие строки поднимается как pgx.ErrNoRows без переклассификации.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	var model converter.ProductModel
	if err := scanProduct(tr.QuerierFromCtx(ctx, p.pool).QueryRow(ctx, query, id), &model); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// GetByNameOrSKU возвращает товар, совпадающий по имени ИЛИ по нормализованному sku.
// Используется исключительно для предварительной проверки конфликтов,
// поэтому отсутствие совпадения — не ошибка.
func (p *ProductRepo) GetByNameOrSKU(ctx context.Context, name, sku string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name = $1 OR sku = $2
		LIMIT 1
	`

	var model converter.ProductModel
	err := scanProduct(tr.QuerierFromCtx(ctx, p.pool).QueryRow(ctx, query, name, sku), &model)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// GetAll возвращает все товары в порядке хранения.
func (p *ProductRepo) GetAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := scanProduct(rows, &model); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Insert сохраняет новый товар, идентификатор и метки времени назначает хранилище.
func (p *ProductRepo) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (name, sku, quantity, is_active, price, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + productColumns + `
	`

	var model converter.ProductModel
	row := tx.QueryRow(ctx, query,
		product.Name, product.SKU, product.Quantity, product.IsActive, product.Price, product.CategoryID,
	)
	if err := scanProduct(row, &model); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Update перезаписывает поля товара и обновляет updated_at.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET name = $1, sku = $2, quantity = $3, is_active = $4, price = $5, category_id = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING ` + productColumns + `
	`

	var model converter.ProductModel
	row := tx.QueryRow(ctx, query,
		product.Name, product.SKU, product.Quantity, product.IsActive, product.Price, product.CategoryID, product.ID,
	)
	if err := scanProduct(row, &model); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Delete безвозвратно удаляет товар по первичному ключу.
func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		DELETE FROM products
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, query, id); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// scanProduct сканирует строку результата в модель в порядке productColumns.
func scanProduct(row pgx.Row, model *converter.ProductModel) error {
	return row.Scan(
		&model.ID, &model.Name, &model.SKU, &model.Quantity, &model.IsActive,
		&model.Price, &model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
	)
}
