package handlers

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func addressBody(isDefault bool) string {
	if isDefault {
		return `{"name":"Home","street":"1 Main St","city":"Springfield","state":"IL","postalCode":"62701","country":"US","isDefault":true}`
	}
	return `{"name":"Home","street":"1 Main St","city":"Springfield","state":"IL","postalCode":"62701","country":"US","isDefault":false}`
}

func TestCreateDefaultAddressClearsOthers(t *testing.T) {
	h, mock := newTestHandlers(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE addresses SET is_default = false WHERE user_id = ?")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO addresses")).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	w := serveAs(7, http.MethodPost, "/addresses", addressBody(true), func(r *gin.Engine) {
		r.POST("/addresses", h.CreateAddress)
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNonDefaultAddressLeavesOthersAlone(t *testing.T) {
	h, mock := newTestHandlers(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO addresses")).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	w := serveAs(7, http.MethodPost, "/addresses", addressBody(false), func(r *gin.Engine) {
		r.POST("/addresses", h.CreateAddress)
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAddressChecksOwnership(t *testing.T) {
	h, mock := newTestHandlers(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM addresses WHERE id = ?")).
		WithArgs("4").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(99)))
	mock.ExpectRollback()

	w := serveAs(7, http.MethodPut, "/addresses/4", addressBody(false), func(r *gin.Engine) {
		r.PUT("/addresses/:id", h.UpdateAddress)
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
