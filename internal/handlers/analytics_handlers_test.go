package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAnalyticsExcludesCancelledRevenue(t *testing.T) {
	h, mock := newTestHandlers(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(total), 0) FROM orders WHERE status <> 'cancelled'")).
		WillReturnRows(sqlmock.NewRows([]string{"revenue"}).AddRow(123.45))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) FROM orders GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 2).
			AddRow("cancelled", 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, stock FROM products WHERE stock < ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stock"}).
			AddRow(int64(4), "Mug", 3))
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "total"}).
			AddRow(time.Now().UTC(), 100.0).
			AddRow(time.Now().UTC().AddDate(0, 0, -1), 23.45))

	w := serveAs(1, http.MethodGet, "/analytics", "", func(r *gin.Engine) {
		r.GET("/analytics", h.GetAnalytics)
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp AnalyticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 123.45, resp.Revenue)
	assert.Equal(t, 2, resp.OrdersByStatus["pending"])
	assert.Equal(t, 1, resp.OrdersByStatus["cancelled"])
	require.Len(t, resp.LowStock, 1)
	assert.Equal(t, "Mug", resp.LowStock[0].Name)

	require.Len(t, resp.RevenueSeries, 7)
	today := time.Now().UTC().Format("2006-01-02")
	last := resp.RevenueSeries[len(resp.RevenueSeries)-1]
	assert.Equal(t, today, last.Date)
	assert.Equal(t, 100.0, last.Revenue)
	assert.Equal(t, 23.45, resp.RevenueSeries[len(resp.RevenueSeries)-2].Revenue)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAnalyticsEmptyDataset(t *testing.T) {
	h, mock := newTestHandlers(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(total), 0) FROM orders WHERE status <> 'cancelled'")).
		WillReturnRows(sqlmock.NewRows([]string{"revenue"}).AddRow(0.0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) FROM orders GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, stock FROM products WHERE stock < ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stock"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "total"}))

	w := serveAs(1, http.MethodGet, "/analytics", "", func(r *gin.Engine) {
		r.GET("/analytics", h.GetAnalytics)
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp AnalyticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp.Revenue)
	assert.Empty(t, resp.LowStock)
	require.Len(t, resp.RevenueSeries, 7)
	for _, point := range resp.RevenueSeries {
		assert.Equal(t, 0.0, point.Revenue)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}
