package handlers

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAddToWishlistDuplicateIsNoOp(t *testing.T) {
	h, mock := newTestHandlers(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM products WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))
	// INSERT IGNORE reports zero affected rows for an existing pair; the
	// handler still answers success.
	mock.ExpectExec(regexp.QuoteMeta("INSERT IGNORE INTO wishlist_items")).
		WithArgs(int64(7), int64(3), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := serveAs(7, http.MethodPost, "/wishlist", `{"productId": 3}`, func(r *gin.Engine) {
		r.POST("/wishlist", h.AddToWishlist)
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWishlistItemNotFound(t *testing.T) {
	h, mock := newTestHandlers(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM wishlist_items WHERE user_id = ? AND product_id = ?")).
		WithArgs(int64(7), "3").
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := serveAs(7, http.MethodDelete, "/wishlist/3", "", func(r *gin.Engine) {
		r.DELETE("/wishlist/:product_id", h.DeleteWishlistItem)
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
