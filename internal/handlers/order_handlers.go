package handlers

import (
	"database/sql"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/SadiqJ21/Tawsil-Webapp/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//
// --- Order Handlers ---
//

// OrderLineInput is one cart line submitted at checkout. Name and price are
// snapshotted into order_items so the order survives later product edits.
type OrderLineInput struct {
	ProductID int64   `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"gte=0"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
}

// PlaceOrderInput defines the JSON for POST /v1/orders.
type PlaceOrderInput struct {
	Items           []OrderLineInput `json:"items" binding:"required,min=1,dive"`
	Total           float64          `json:"total" binding:"gte=0"`
	ShippingAddress string           `json:"shippingAddress" binding:"required"`
}

// PlaceOrder is the handler for POST /v1/orders
// The whole sequence runs inside one transaction with the product rows
// locked, so either every stock decrement, the order, its lines, the log
// entry and the cart clear land together, or none of them do.
func (h *Handlers) PlaceOrder(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	var input PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var total float64
	for _, line := range input.Items {
		total += line.Price * float64(line.Quantity)
	}
	if math.Abs(total-input.Total) > 0.01 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order total does not match line items"})
		return
	}

	tx, err := h.DB.BeginTx(c, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	var userEmail string
	if err := tx.QueryRow("SELECT email FROM users WHERE id = ?", userID).Scan(&userEmail); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	// Check and decrement stock line by line with the rows locked. Any
	// shortfall aborts before a single decrement is committed.
	for _, line := range input.Items {
		var stock int
		err := tx.QueryRow("SELECT stock FROM products WHERE id = ? FOR UPDATE", line.ProductID).Scan(&stock)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product %d not found", line.ProductID)})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check stock"})
			return
		}
		if stock < line.Quantity {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Insufficient stock for product %d", line.ProductID)})
			return
		}

		if _, err := tx.Exec("UPDATE products SET stock = stock - ? WHERE id = ?", line.Quantity, line.ProductID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}
	}

	now := time.Now()
	reference := uuid.New().String()

	orderQuery := `
		INSERT INTO orders (reference, user_id, user_email, total, status, shipping_address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.Exec(orderQuery, reference, userID, userEmail, total,
		models.StatusPending, input.ShippingAddress, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get new order ID"})
		return
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, name, price, quantity)
		VALUES (?, ?, ?, ?, ?)`
	for _, line := range input.Items {
		if _, err := tx.Exec(itemQuery, orderID, line.ProductID, line.Name, line.Price, line.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order item"})
			return
		}
	}

	details := fmt.Sprintf("Order %s placed, total %.2f", reference, total)
	if err := h.logActivity(tx, models.ActivityOrderCreated, userID, userEmail, details); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log order"})
		return
	}

	if _, err := tx.Exec("DELETE FROM cart_items WHERE user_id = ?", userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Order placed successfully",
		"orderId":   orderID,
		"reference": reference,
		"status":    models.StatusPending,
		"total":     total,
	})
}

// GetMyOrders is the handler for GET /v1/orders
func (h *Handlers) GetMyOrders(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	query := `
		SELECT id, reference, user_id, user_email, total, status, shipping_address, created_at, updated_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC`

	rows, err := h.DB.Query(query, userID)
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

// GetOrderDetails is the handler for GET /v1/orders/:id
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)
	orderID := c.Param("id")

	var o models.Order
	queryOrder := `
		SELECT id, reference, user_id, user_email, total, status, shipping_address, created_at, updated_at
		FROM orders
		WHERE id = ? AND user_id = ?`

	err := h.DB.QueryRow(queryOrder, orderID, userID).Scan(
		&o.ID, &o.Reference, &o.UserID, &o.UserEmail, &o.Total, &o.Status,
		&o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	queryItems := `
		SELECT id, order_id, product_id, name, price, quantity
		FROM order_items
		WHERE order_id = ?`

	rows, err := h.DB.Query(queryItems, o.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order items"})
		return
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.Price, &item.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order item"})
			return
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating order items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": o,
		"items": items,
	})
}

// scanOrders drains a full-row orders result set.
func scanOrders(rows *sql.Rows) ([]models.Order, error) {
	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.Reference, &o.UserID, &o.UserEmail, &o.Total,
			&o.Status, &o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
