package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/SadiqJ21/Tawsil-Webapp/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Admin: Order Management ---
//

// ListAllOrders is the handler for GET /v1/admin/orders
// Optional ?status= filters by lifecycle state.
func (h *Handlers) ListAllOrders(c *gin.Context) {
	query := `
		SELECT id, reference, user_id, user_email, total, status, shipping_address, created_at, updated_at
		FROM orders`
	args := []interface{}{}

	if status := c.Query("status"); status != "" {
		if !models.OrderStatus(status).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
			return
		}
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatusInput defines the JSON for a status transition.
type UpdateOrderStatusInput struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus is the handler for PUT /v1/orders/:id/status
// Moving an order into cancelled restocks every line by its quantity in the
// same transaction as the status write, so the restock happens exactly once.
// Cancelled orders never transition again.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	adminID := userIDRaw.(int64)
	orderID := c.Param("id")

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	var currentStatus models.OrderStatus
	var orderUserEmail string
	err = tx.QueryRow("SELECT status, user_email FROM orders WHERE id = ? FOR UPDATE", orderID).
		Scan(&currentStatus, &orderUserEmail)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	if !models.CanTransition(currentStatus, input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Cannot change status from %s to %s", currentStatus, input.Status),
		})
		return
	}

	// Cancellation compensates the stock decrements made at placement.
	if input.Status == models.StatusCancelled {
		if err := restockOrderItems(tx, orderID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restock order items"})
			return
		}
	}

	if _, err := tx.Exec("UPDATE orders SET status = ?, updated_at = ? WHERE id = ?",
		input.Status, time.Now(), orderID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	details := fmt.Sprintf("Order %s status: %s -> %s", orderID, currentStatus, input.Status)
	if err := h.logActivity(tx, models.ActivityOrderStatusChanged, adminID, orderUserEmail, details); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log status change"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status updated",
		"previousStatus": currentStatus,
		"newStatus":      input.Status,
	})
}

// restockOrderItems returns each line's quantity to its product stock.
func restockOrderItems(tx *sql.Tx, orderID string) error {
	rows, err := tx.Query("SELECT product_id, quantity FROM order_items WHERE order_id = ?", orderID)
	if err != nil {
		return err
	}
	defer rows.Close()

	type restockLine struct {
		productID int64
		quantity  int
	}
	var lines []restockLine
	for rows.Next() {
		var line restockLine
		if err := rows.Scan(&line.productID, &line.quantity); err != nil {
			return err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, line := range lines {
		if _, err := tx.Exec("UPDATE products SET stock = stock + ? WHERE id = ?",
			line.quantity, line.productID); err != nil {
			return err
		}
	}
	return nil
}
