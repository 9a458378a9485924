package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeOrderBody() string {
	return `{
		"items": [
			{"productId": 1, "name": "Mug", "price": 10, "quantity": 2},
			{"productId": 2, "name": "Plate", "price": 15, "quantity": 1}
		],
		"total": 35,
		"shippingAddress": "1 Main St, Springfield"
	}`
}

func TestPlaceOrderDecrementsStockAndCreatesOrder(t *testing.T) {
	h, mock := newTestHandlers(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT email FROM users WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("buyer@example.com"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT stock FROM products WHERE id = ? FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(5))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET stock = stock - ? WHERE id = ?")).
		WithArgs(2, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT stock FROM products WHERE id = ? FOR UPDATE")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET stock = stock - ? WHERE id = ?")).
		WithArgs(1, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders")).
		WillReturnResult(sqlmock.NewResult(55, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(int64(55), int64(1), "Mug", 10.0, 2).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(int64(55), int64(2), "Plate", 15.0, 1).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO activity_logs")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE user_id = ?")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	w := serveAs(7, http.MethodPost, "/orders", placeOrderBody(), func(r *gin.Engine) {
		r.POST("/orders", h.PlaceOrder)
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		OrderID int64   `json:"orderId"`
		Total   float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(55), resp.OrderID)
	assert.Equal(t, 35.0, resp.Total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderInsufficientStockAppliesNothing(t *testing.T) {
	h, mock := newTestHandlers(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT email FROM users WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("buyer@example.com"))

	// First line is fine, second falls short. The transaction rolls back,
	// so the first decrement never lands either.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT stock FROM products WHERE id = ? FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(5))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET stock = stock - ? WHERE id = ?")).
		WithArgs(2, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT stock FROM products WHERE id = ? FOR UPDATE")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(0))
	mock.ExpectRollback()

	w := serveAs(7, http.MethodPost, "/orders", placeOrderBody(), func(r *gin.Engine) {
		r.POST("/orders", h.PlaceOrder)
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient stock")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderRejectsTotalMismatch(t *testing.T) {
	h, mock := newTestHandlers(t)

	body := `{
		"items": [{"productId": 1, "name": "Mug", "price": 10, "quantity": 2}],
		"total": 99,
		"shippingAddress": "1 Main St"
	}`

	w := serveAs(7, http.MethodPost, "/orders", body, func(r *gin.Engine) {
		r.POST("/orders", h.PlaceOrder)
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	h, mock := newTestHandlers(t)

	body := `{
		"items": [{"productId": 9, "name": "Ghost", "price": 5, "quantity": 1}],
		"total": 5,
		"shippingAddress": "1 Main St"
	}`

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT email FROM users WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("buyer@example.com"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT stock FROM products WHERE id = ? FOR UPDATE")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}))
	mock.ExpectRollback()

	w := serveAs(7, http.MethodPost, "/orders", body, func(r *gin.Engine) {
		r.POST("/orders", h.PlaceOrder)
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
