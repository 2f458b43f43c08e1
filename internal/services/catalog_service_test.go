// internal/services/catalog_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/multishop/multishop-backend/internal/utils"
)

// setupCapturingDB matches every expectation regardless of SQL text and
// records the statements actually issued, so tests can assert on the
// generated WHERE clauses themselves.
func setupCapturingDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *[]string) {
	t.Helper()

	var captured []string
	matcher := sqlmock.QueryMatcherFunc(func(expectedSQL, actualSQL string) error {
		captured = append(captured, actualSQL)
		return nil
	})

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock, &captured
}

func TestGetProductBySlugNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCatalogService(db, testStoreConfig())

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetProductBySlug("no-such-product")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")
}

func TestGetProductBySlugLoadsRelated(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCatalogService(db, testStoreConfig())

	productID := uuid.New()
	categoryID := uuid.New()
	relatedID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "name", "slug", "price", "is_available"}).
			AddRow(productID, categoryID, "Dog Food", "dog-food", 300.0, true))

	// Category preload
	mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(categoryID, "Pet Supplies", "pet-supplies"))

	// Related picks from the same category, excluding the product itself
	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "name", "slug", "price", "is_available"}).
			AddRow(relatedID, categoryID, "Cat Food", "cat-food", 250.0, true))

	detail, err := svc.GetProductBySlug("dog-food")
	require.NoError(t, err)
	assert.Equal(t, "Dog Food", detail.Product.Name)
	assert.Equal(t, "Pet Supplies", detail.Product.Category.Name)
	require.Len(t, detail.Related, 1)
	assert.Equal(t, "Cat Food", detail.Related[0].Name)
}

func TestListProductsSearchMatchesNameOnly(t *testing.T) {
	db, mock, captured := setupCapturingDB(t)
	svc := NewCatalogService(db, testStoreConfig())

	categoryID := uuid.New()

	mock.ExpectQuery("count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("products").
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "name", "slug", "price", "is_available"}).
			AddRow(uuid.New(), categoryID, "Dog Food", "dog-food", 300.0, true))
	mock.ExpectQuery("categories").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(categoryID, "Pet Supplies", "pet-supplies"))

	params := utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc", Search: "Food"}
	_, _, err := svc.ListProducts(params, nil)
	require.NoError(t, err)

	require.NotEmpty(t, *captured)
	nameClause := false
	for _, q := range *captured {
		lq := strings.ToLower(q)
		// A term found only in the description must not match
		assert.NotContains(t, lq, "products.description")
		if strings.Contains(lq, "lower(products.name) like") {
			nameClause = true
		}
	}
	assert.True(t, nameClause, "search should filter on the product name")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProductsCategoryAndPriceRange(t *testing.T) {
	db, mock, captured := setupCapturingDB(t)
	svc := NewCatalogService(db, testStoreConfig())

	categoryID := uuid.New()
	minPrice := 100.0
	maxPrice := 400.0

	mock.ExpectQuery("count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("products").
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "name", "slug", "price", "is_available"}).
			AddRow(uuid.New(), categoryID, "Dog Food", "dog-food", 300.0, true))
	mock.ExpectQuery("categories").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(categoryID, "Pet Supplies", "pet-supplies"))

	params := utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc", Category: "pet-supplies"}
	filters := &ProductFilters{MinPrice: &minPrice, MaxPrice: &maxPrice}

	_, _, err := svc.ListProducts(params, filters)
	require.NoError(t, err)

	// Category slug and both price bounds must land in one conjunctive WHERE
	listing := strings.ToLower(strings.Join(*captured, "\n"))
	assert.Contains(t, listing, "join categories on categories.id = products.category_id")
	assert.Contains(t, listing, "categories.slug")
	assert.Contains(t, listing, "products.price >=")
	assert.Contains(t, listing, "products.price <=")
	assert.Contains(t, listing, "products.is_available")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCategoryWithProducts(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCatalogService(db, testStoreConfig())

	categoryID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(categoryID, "Pet Supplies", "pet-supplies"))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	err := svc.DeleteCategory(categoryID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category has products")
}

func TestDeleteCategoryEmpty(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCatalogService(db, testStoreConfig())

	categoryID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(categoryID, "Empty", "empty"))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	// Soft delete shows up as an UPDATE on deleted_at
	mock.ExpectExec(`UPDATE "categories"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.DeleteCategory(categoryID)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCategoryRejectsDuplicateSlug(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewCatalogService(db, testStoreConfig())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.CreateCategory(&CreateCategoryRequest{Name: "Pet Supplies"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slug already taken")
}

func TestGetProductBySlugPreloadOrder(t *testing.T) {
	// GetProductBySlug also preloads the vendor when one is attached;
	// with no vendor_id on the row the preload is skipped entirely.
	db, mock := setupMockDB(t)
	svc := NewCatalogService(db, testStoreConfig())

	productID := uuid.New()
	categoryID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "vendor_id", "name", "slug", "price", "is_available"}).
			AddRow(productID, categoryID, nil, "Dog Food", "dog-food", 300.0, true))

	mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(categoryID, "Pet Supplies", "pet-supplies"))

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	detail, err := svc.GetProductBySlug("dog-food")
	require.NoError(t, err)
	assert.Nil(t, detail.Product.Vendor)
	assert.Empty(t, detail.Related)
}
