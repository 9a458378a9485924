package handlers

import (
	"net/http"
	"time"

	"github.com/SadiqJ21/Tawsil-Webapp/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Admin: Analytics Dashboard ---
//

// LowStockProduct is one row of the restocking list.
type LowStockProduct struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// RevenuePoint is one day of the trailing revenue series.
type RevenuePoint struct {
	Date    string  `json:"date"` // UTC calendar day, YYYY-MM-DD
	Revenue float64 `json:"revenue"`
}

// AnalyticsResponse is the payload for the admin dashboard.
type AnalyticsResponse struct {
	Revenue        float64           `json:"revenue"`
	OrdersByStatus map[string]int    `json:"ordersByStatus"`
	LowStock       []LowStockProduct `json:"lowStock"`
	RevenueSeries  []RevenuePoint    `json:"revenueSeries"`
}

// GetAnalytics is the handler for GET /v1/admin/analytics
// Revenue excludes cancelled orders. The series covers the trailing 7 UTC
// calendar days including today, zero-filled.
func (h *Handlers) GetAnalytics(c *gin.Context) {
	resp := AnalyticsResponse{
		OrdersByStatus: map[string]int{},
		LowStock:       []LowStockProduct{},
	}

	// 1. Total revenue (COALESCE keeps an empty order set at 0, not NULL).
	err := h.DB.QueryRow("SELECT COALESCE(SUM(total), 0) FROM orders WHERE status <> 'cancelled'").
		Scan(&resp.Revenue)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate revenue"})
		return
	}

	// 2. Order counts by status.
	statusRows, err := h.DB.Query("SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
		return
	}
	defer statusRows.Close()

	for statusRows.Next() {
		var status string
		var count int
		if err := statusRows.Scan(&status, &count); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order counts"})
			return
		}
		resp.OrdersByStatus[status] = count
	}
	if err = statusRows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating order counts"})
		return
	}

	// 3. Low-stock list.
	lowStockRows, err := h.DB.Query(
		"SELECT id, name, stock FROM products WHERE stock < ? ORDER BY stock ASC",
		models.LowStockThreshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch low stock products"})
		return
	}
	defer lowStockRows.Close()

	for lowStockRows.Next() {
		var p LowStockProduct
		if err := lowStockRows.Scan(&p.ID, &p.Name, &p.Stock); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan low stock row"})
			return
		}
		resp.LowStock = append(resp.LowStock, p)
	}
	if err = lowStockRows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating low stock rows"})
		return
	}

	// 4. Trailing 7-day revenue, bucketed in Go by UTC date string.
	series, err := h.revenueSeries(time.Now().UTC(), 7)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build revenue series"})
		return
	}
	resp.RevenueSeries = series

	c.JSON(http.StatusOK, resp)
}

// revenueSeries sums non-cancelled order totals per UTC calendar day for the
// 'days' days ending at 'now', oldest first, with empty days at zero.
func (h *Handlers) revenueSeries(now time.Time, days int) ([]RevenuePoint, error) {
	since := now.AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)

	rows, err := h.DB.Query(`
		SELECT created_at, total
		FROM orders
		WHERE status <> 'cancelled' AND created_at >= ?`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := map[string]float64{}
	for rows.Next() {
		var createdAt time.Time
		var total float64
		if err := rows.Scan(&createdAt, &total); err != nil {
			return nil, err
		}
		buckets[createdAt.UTC().Format("2006-01-02")] += total
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	series := make([]RevenuePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		series = append(series, RevenuePoint{Date: day, Revenue: buckets[day]})
	}
	return series, nil
}
