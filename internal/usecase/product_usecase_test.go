package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx — минимальная заглушка pgx.Tx для проверки коммитов и откатов.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (t *fakeTx) Conn() *pgx.Conn { return nil }

// fakeDB реализует transaction.Transactional поверх fakeTx.
type fakeDB struct {
	tx *fakeTx
}

func (f *fakeDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return f.tx, nil
}

// fakeProductRepo — управляемая заглушка репозитория товаров.
type fakeProductRepo struct {
	byID         map[int64]*domain.Product
	byNameOrSKU  *domain.Product
	all          []domain.Product
	inserted     *domain.Product
	updated      *domain.Product
	deletedID    int64
	insertErr    error
	updateErr    error
	deleteErr    error
	getByIDErr   error
	nextID       int64
	insertCalled bool
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[int64]*domain.Product), nextID: 1}
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	product, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *product
	return &clone, nil
}

func (f *fakeProductRepo) GetByNameOrSKU(ctx context.Context, name, sku string) (*domain.Product, error) {
	return f.byNameOrSKU, nil
}

func (f *fakeProductRepo) GetAll(ctx context.Context) ([]domain.Product, error) {
	return f.all, nil
}

func (f *fakeProductRepo) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	f.insertCalled = true
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	clone := *product
	clone.ID = f.nextID
	f.nextID++
	f.inserted = &clone
	return &clone, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	clone := *product
	f.updated = &clone
	return &clone, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

type fakeCategoryRepo struct {
	categories []domain.Category
}

func (f *fakeCategoryRepo) GetAll(ctx context.Context) ([]domain.Category, error) {
	return f.categories, nil
}

func newTestUC(repo *fakeProductRepo) (*ProductUseCase, *fakeTx) {
	tx := &fakeTx{}
	uc := NewProductUC(repo, &fakeCategoryRepo{}, &fakeDB{tx: tx}, logger.NewSlogLogger())
	return uc, tx
}

func TestCreateProduct_NormalizesAndForcesActive(t *testing.T) {
	repo := newFakeProductRepo()
	uc, tx := newTestUC(repo)

	created, err := uc.CreateProduct(context.Background(), NewCreateProductReq("  Widget ", " ABC-123 ", 5, 999, 1))
	require.NoError(t, err)

	assert.Equal(t, "Widget", created.Name)
	assert.Equal(t, "abc-123", created.SKU)
	assert.True(t, created.IsActive)
	assert.Equal(t, int64(5), created.Quantity)
	assert.Equal(t, int64(999), created.Price)
	assert.Equal(t, int64(1), created.CategoryID)
	assert.NotZero(t, created.ID)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestCreateProduct_Conflict(t *testing.T) {
	repo := newFakeProductRepo()
	repo.byNameOrSKU = &domain.Product{ID: 7, Name: "Widget", SKU: "abc-123"}
	uc, tx := newTestUC(repo)

	_, err := uc.CreateProduct(context.Background(), NewCreateProductReq("Widget", "abc-123", 1, 100, 1))
	require.ErrorIs(t, err, e.ErrProductExists)

	assert.False(t, repo.insertCalled)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestCreateProduct_ConstraintViolationMapsToConflict(t *testing.T) {
	repo := newFakeProductRepo()
	repo.insertErr = &pgconn.PgError{Code: "23503"}
	uc, tx := newTestUC(repo)

	_, err := uc.CreateProduct(context.Background(), NewCreateProductReq("Widget", "abc-123", 1, 100, 999))
	require.ErrorIs(t, err, e.ErrAddProductFailed)
	assert.True(t, tx.rolledBack)
}

func TestCreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreateProductReq
		wantErr error
	}{
		{"empty name", NewCreateProductReq("   ", "sku", 1, 100, 1), e.ErrProductNameRequired},
		{"empty sku", NewCreateProductReq("Widget", "  ", 1, 100, 1), e.ErrProductSKURequired},
		{"negative quantity", NewCreateProductReq("Widget", "sku", -1, 100, 1), e.ErrQuantityNegative},
		{"negative price", NewCreateProductReq("Widget", "sku", 1, -100, 1), e.ErrInvalidPrice},
		{"missing category", NewCreateProductReq("Widget", "sku", 1, 100, 0), e.ErrCategoryRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeProductRepo()
			uc, _ := newTestUC(repo)

			_, err := uc.CreateProduct(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.False(t, repo.insertCalled)
		})
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	uc, _ := newTestUC(newFakeProductRepo())

	_, err := uc.GetProduct(context.Background(), 99999)
	require.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	uc, tx := newTestUC(newFakeProductRepo())

	_, err := uc.UpdateProduct(context.Background(), 42, NewUpdateProductReq("X", "", 0, false, 0, 0))
	require.ErrorIs(t, err, e.ErrProductNotFound)
	assert.True(t, tx.rolledBack)
}

func TestUpdateProduct_FalsyFieldsAreSkipped(t *testing.T) {
	repo := newFakeProductRepo()
	repo.byID[1] = &domain.Product{
		ID: 1, Name: "Widget", SKU: "abc-123", Quantity: 5, IsActive: true, Price: 999, CategoryID: 1,
	}
	uc, tx := newTestUC(repo)

	// Нулевые quantity/price и is_active=false трактуются как «поле не передано».
	updated, err := uc.UpdateProduct(context.Background(), 1, NewUpdateProductReq("", "", 0, false, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, "abc-123", updated.SKU)
	assert.Equal(t, int64(5), updated.Quantity)
	assert.True(t, updated.IsActive)
	assert.Equal(t, int64(999), updated.Price)
	assert.Equal(t, int64(1), updated.CategoryID)
	assert.True(t, tx.committed)
}

func TestUpdateProduct_AppliesTruthyFieldsNormalized(t *testing.T) {
	repo := newFakeProductRepo()
	repo.byID[1] = &domain.Product{
		ID: 1, Name: "Widget", SKU: "abc-123", Quantity: 5, IsActive: true, Price: 999, CategoryID: 1,
	}
	uc, _ := newTestUC(repo)

	updated, err := uc.UpdateProduct(context.Background(), 1, NewUpdateProductReq("  Gadget ", " NEW-SKU ", 7, false, 1250, 2))
	require.NoError(t, err)

	assert.Equal(t, "Gadget", updated.Name)
	assert.Equal(t, "new-sku", updated.SKU)
	assert.Equal(t, int64(7), updated.Quantity)
	assert.Equal(t, int64(1250), updated.Price)
	assert.Equal(t, int64(2), updated.CategoryID)
}

func TestUpdateProduct_ConstraintViolationMapsToConflict(t *testing.T) {
	repo := newFakeProductRepo()
	repo.byID[1] = &domain.Product{ID: 1, Name: "Widget", SKU: "abc-123", CategoryID: 1}
	repo.updateErr = &pgconn.PgError{Code: "23505"}
	uc, tx := newTestUC(repo)

	_, err := uc.UpdateProduct(context.Background(), 1, NewUpdateProductReq("Gadget", "", 0, false, 0, 0))
	require.ErrorIs(t, err, e.ErrUpdateProductFailed)
	assert.True(t, tx.rolledBack)
}

func TestDeleteProduct_ReturnsSnapshot(t *testing.T) {
	repo := newFakeProductRepo()
	repo.byID[1] = &domain.Product{ID: 1, Name: "Widget", SKU: "abc-123", Quantity: 5, Price: 999, CategoryID: 1}
	uc, tx := newTestUC(repo)

	deleted, err := uc.DeleteProduct(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), deleted.ID)
	assert.Equal(t, "Widget", deleted.Name)
	assert.Equal(t, int64(1), repo.deletedID)
	assert.True(t, tx.committed)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	uc, tx := newTestUC(newFakeProductRepo())

	_, err := uc.DeleteProduct(context.Background(), 5)
	require.ErrorIs(t, err, e.ErrProductNotFound)
	assert.True(t, tx.rolledBack)
}

func TestDeleteProduct_StorageFailureMapsToConflict(t *testing.T) {
	repo := newFakeProductRepo()
	repo.byID[1] = &domain.Product{ID: 1, Name: "Widget"}
	repo.deleteErr = &pgconn.PgError{Code: "23503"}
	uc, tx := newTestUC(repo)

	_, err := uc.DeleteProduct(context.Background(), 1)
	require.ErrorIs(t, err, e.ErrDeleteProductFailed)
	assert.True(t, tx.rolledBack)
}

func TestListProducts_Empty(t *testing.T) {
	uc, _ := newTestUC(newFakeProductRepo())

	products, err := uc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestApplyPatch_CannotZeroFields(t *testing.T) {
	product := &domain.Product{Name: "Widget", SKU: "abc", Quantity: 3, IsActive: true, Price: 500, CategoryID: 1}

	applyPatch(product, NewUpdateProductReq("", "", 0, false, 0, 0))

	assert.Equal(t, int64(3), product.Quantity)
	assert.Equal(t, int64(500), product.Price)
	assert.True(t, product.IsActive)
}

func TestIsConstraintViolation(t *testing.T) {
	assert.True(t, isConstraintViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isConstraintViolation(e.Wrap("op", &pgconn.PgError{Code: "23503"})))
	assert.False(t, isConstraintViolation(pgx.ErrNoRows))
	assert.False(t, isConstraintViolation(&pgconn.PgError{Code: "42601"}))
}
