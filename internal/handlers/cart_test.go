// internal/handlers/cart_test.go
package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// The handler rejects bad input before any service work happens, so a nil
// service is safe in these tests.
func setupCartRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewCartHandler(nil)
	authed := func(c *gin.Context) {
		c.Set("user_id", uuid.New().String())
		c.Next()
	}

	r.POST("/cart/items/:productId", authed, h.AddToCart)
	r.POST("/cart/items/:itemId/update", authed, h.UpdateCartItem)
	r.DELETE("/cart/items/:itemId", authed, h.RemoveCartItem)

	return r
}

func TestAddToCartInvalidProductID(t *testing.T) {
	r := setupCartRouter()

	req, _ := http.NewRequest("POST", "/cart/items/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddToCartRejectsZeroQuantity(t *testing.T) {
	r := setupCartRouter()

	body := bytes.NewBufferString(`{"quantity": -2}`)
	req, _ := http.NewRequest("POST", "/cart/items/"+uuid.NewString(), body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCartItemRejectsUnknownAction(t *testing.T) {
	r := setupCartRouter()

	body := bytes.NewBufferString(`{"action": "double"}`)
	req, _ := http.NewRequest("POST", "/cart/items/"+uuid.NewString()+"/update", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCartItemRejectsMissingAction(t *testing.T) {
	r := setupCartRouter()

	body := bytes.NewBufferString(`{}`)
	req, _ := http.NewRequest("POST", "/cart/items/"+uuid.NewString()+"/update", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveCartItemInvalidID(t *testing.T) {
	r := setupCartRouter()

	req, _ := http.NewRequest("DELETE", "/cart/items/xyz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartEndpointsRequireIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCartHandler(nil)
	r.POST("/cart/items/:productId", h.AddToCart)

	req, _ := http.NewRequest("POST", "/cart/items/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
