// internal/services/checkout_service_test.go
package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multishop/multishop-backend/internal/models"
)

func validCheckoutRequest() *CheckoutRequest {
	return &CheckoutRequest{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "asha@example.com",
		Phone:     "9876543210",
		Address:   "12 MG Road",
		City:      "Pune",
		State:     "Maharashtra",
		PinCode:   "411001",
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCheckoutService(db, testStoreConfig())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Checkout(uuid.New(), validCheckoutRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart is empty")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutPlacesOrder(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCheckoutService(db, testStoreConfig())

	userID := uuid.New()
	productID := uuid.New()
	itemID := uuid.New()
	billingID := uuid.New()
	orderID := uuid.New()
	orderItemID := uuid.New()

	mock.ExpectBegin()

	mock.ExpectQuery(`SELECT \* FROM "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity"}).
			AddRow(itemID, userID, productID, 2))

	// Preload of each line's product; the discount price is the one charged
	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "discount_price", "stock", "is_available"}).
			AddRow(productID, "Dog Food", 300.0, 250.0, 10, true))

	mock.ExpectQuery(`INSERT INTO "billing_addresses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(billingID))

	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(orderID))

	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(orderItemID))

	mock.ExpectExec(`DELETE FROM "cart_items"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectCommit()

	order, err := svc.Checkout(userID, validCheckoutRequest())
	require.NoError(t, err)

	// 2 x 250 lands exactly on the free-shipping threshold
	assert.Equal(t, 500.0, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 250.0, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)
	require.NotNil(t, order.BillingAddress)
	assert.Equal(t, "India", order.BillingAddress.Country)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutShippingBelowThreshold(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCheckoutService(db, testStoreConfig())

	userID := uuid.New()
	productID := uuid.New()

	mock.ExpectBegin()

	mock.ExpectQuery(`SELECT \* FROM "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity"}).
			AddRow(uuid.New(), userID, productID, 1))

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "is_available"}).
			AddRow(productID, "Cat Toy", 120.0, 5, true))

	mock.ExpectQuery(`INSERT INTO "billing_addresses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))

	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))

	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))

	mock.ExpectExec(`DELETE FROM "cart_items"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectCommit()

	order, err := svc.Checkout(userID, validCheckoutRequest())
	require.NoError(t, err)

	// 120 subtotal + 50 flat shipping
	assert.Equal(t, 170.0, order.TotalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPreviewComputesTotals(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCheckoutService(db, testStoreConfig())

	userID := uuid.New()
	productID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity"}).
			AddRow(uuid.New(), userID, productID, 3))

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "is_available"}).
			AddRow(productID, "Bird Seed", 90.0, 20, true))

	preview, err := svc.Preview(userID)
	require.NoError(t, err)
	assert.Equal(t, 270.0, preview.Totals.Subtotal)
	assert.Equal(t, 50.0, preview.Totals.Shipping)
	assert.Equal(t, 320.0, preview.Totals.Total)
	require.Len(t, preview.Items, 1)
}
