package handlers

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	h, mock := newTestHandlers(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE email = ?")).
		WithArgs("taken@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	body := `{"name":"New User","email":"taken@example.com","password":"supersecret"}`
	w := serveAs(0, http.MethodPost, "/signup", body, func(r *gin.Engine) {
		r.POST("/signup", h.Signup)
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupRejectsShortPassword(t *testing.T) {
	h, mock := newTestHandlers(t)

	body := `{"name":"New User","email":"new@example.com","password":"short"}`
	w := serveAs(0, http.MethodPost, "/signup", body, func(r *gin.Engine) {
		r.POST("/signup", h.Signup)
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	h, mock := newTestHandlers(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, role, email, password_hash FROM users WHERE email = ?")).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "email", "password_hash"}))

	body := `{"email":"ghost@example.com","password":"whatever123"}`
	w := serveAs(0, http.MethodPost, "/login", body, func(r *gin.Engine) {
		r.POST("/login", h.Login)
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
