// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/multishop/multishop-backend/internal/config"
	"github.com/multishop/multishop-backend/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func testStoreConfig() *config.Config {
	return &config.Config{
		Store: config.StoreConfig{
			ShippingFee:           50,
			FreeShippingThreshold: 500,
			FeaturedLimit:         8,
			RelatedLimit:          4,
			RecentOrdersLimit:     5,
		},
	}
}

func cartItemsWithSubtotal(subtotal float64) []models.CartItem {
	return []models.CartItem{
		{Quantity: 1, Product: models.Product{Price: subtotal}},
	}
}

func TestComputeCartTotalsBelowThreshold(t *testing.T) {
	totals := ComputeCartTotals(cartItemsWithSubtotal(499.99), 50, 500)

	assert.Equal(t, 499.99, totals.Subtotal)
	assert.Equal(t, 50.0, totals.Shipping)
	assert.Equal(t, 549.99, totals.Total)
	assert.Equal(t, 1, totals.ItemCount)
}

func TestComputeCartTotalsAtThreshold(t *testing.T) {
	// Exactly at the threshold ships free
	totals := ComputeCartTotals(cartItemsWithSubtotal(500), 50, 500)

	assert.Equal(t, 500.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Shipping)
	assert.Equal(t, 500.0, totals.Total)
}

func TestComputeCartTotalsAboveThreshold(t *testing.T) {
	totals := ComputeCartTotals(cartItemsWithSubtotal(1200), 50, 500)

	assert.Equal(t, 1200.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Shipping)
	assert.Equal(t, 1200.0, totals.Total)
}

func TestComputeCartTotalsUsesDiscountPrice(t *testing.T) {
	discount := 100.0
	items := []models.CartItem{
		{Quantity: 2, Product: models.Product{Price: 150, DiscountPrice: &discount}},
		{Quantity: 1, Product: models.Product{Price: 80}},
	}

	totals := ComputeCartTotals(items, 50, 500)

	assert.Equal(t, 280.0, totals.Subtotal)
	assert.Equal(t, 50.0, totals.Shipping)
	assert.Equal(t, 330.0, totals.Total)
	assert.Equal(t, 2, totals.ItemCount)
}

func TestAddToCartCreatesLine(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCartService(db, testStoreConfig())

	userID := uuid.New()
	productID := uuid.New()
	itemID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "is_available"}).
			AddRow(productID, "Dog Food", 300.0, 10, true))

	// No existing line for this product
	mock.ExpectQuery(`SELECT \* FROM "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectQuery(`INSERT INTO "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(itemID))

	item, err := svc.AddToCart(userID, productID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "Dog Food", item.Product.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCartMergesQuantities(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCartService(db, testStoreConfig())

	userID := uuid.New()
	productID := uuid.New()
	itemID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "is_available"}).
			AddRow(productID, "Dog Food", 300.0, 10, true))

	mock.ExpectQuery(`SELECT \* FROM "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity"}).
			AddRow(itemID, userID, productID, 2))

	mock.ExpectExec(`UPDATE "cart_items"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	item, err := svc.AddToCart(userID, productID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCartRejectsInsufficientStock(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCartService(db, testStoreConfig())

	userID := uuid.New()
	productID := uuid.New()
	itemID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "is_available"}).
			AddRow(productID, "Dog Food", 300.0, 3, true))

	// Merging would push the line past the available stock
	mock.ExpectQuery(`SELECT \* FROM "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity"}).
			AddRow(itemID, userID, productID, 2))

	_, err := svc.AddToCart(userID, productID, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCartRejectsUnavailableProduct(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCartService(db, testStoreConfig())

	productID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "is_available"}).
			AddRow(productID, "Dog Food", 300.0, 10, false))

	_, err := svc.AddToCart(uuid.New(), productID, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCartService(db, testStoreConfig())

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.AddToCart(uuid.New(), uuid.New(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")
}

func TestUpdateCartItemDecreaseRemovesLastUnit(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCartService(db, testStoreConfig())

	userID := uuid.New()
	productID := uuid.New()
	itemID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity"}).
			AddRow(itemID, userID, productID, 1))

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "is_available"}).
			AddRow(productID, "Dog Food", 300.0, 10, true))

	// Quantity 1 means decrease deletes the row outright
	mock.ExpectExec(`DELETE FROM "cart_items"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	item, err := svc.UpdateCartItem(userID, itemID, models.CartActionDecrease)
	require.NoError(t, err)
	assert.Nil(t, item)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCartItemIncrease(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCartService(db, testStoreConfig())

	userID := uuid.New()
	productID := uuid.New()
	itemID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity"}).
			AddRow(itemID, userID, productID, 2))

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "is_available"}).
			AddRow(productID, "Dog Food", 300.0, 10, true))

	mock.ExpectExec(`UPDATE "cart_items"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	item, err := svc.UpdateCartItem(userID, itemID, models.CartActionIncrease)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveCartItemNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCartService(db, testStoreConfig())

	// Someone else's line or a stale ID deletes nothing
	mock.ExpectExec(`DELETE FROM "cart_items"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.RemoveCartItem(uuid.New(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart item not found")
}
