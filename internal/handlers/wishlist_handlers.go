package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

//
// --- Wishlist Handlers ---
//

// WishlistItemResponse is the per-line shape returned by GetWishlist.
type WishlistItemResponse struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Stock     int     `json:"stock"`
}

// GetWishlist is the handler for GET /v1/wishlist
func (h *Handlers) GetWishlist(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	query := `
		SELECT wi.product_id, p.name, p.price, p.image, p.stock
		FROM wishlist_items wi
		JOIN products p ON wi.product_id = p.id
		WHERE wi.user_id = ?
		ORDER BY wi.created_at DESC`

	rows, err := h.DB.Query(query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query wishlist"})
		return
	}
	defer rows.Close()

	items := []WishlistItemResponse{}
	for rows.Next() {
		var item WishlistItemResponse
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Image, &item.Stock); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan wishlist item"})
			return
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating wishlist items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddToWishlistInput defines the JSON for adding a wishlist entry.
type AddToWishlistInput struct {
	ProductID int64 `json:"productId" binding:"required"`
}

// AddToWishlist is the handler for POST /v1/wishlist
// Re-adding an existing pair is a no-op success, the unique key absorbs it.
func (h *Handlers) AddToWishlist(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	var input AddToWishlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists int64
	if err := h.DB.QueryRow("SELECT id FROM products WHERE id = ?", input.ProductID).Scan(&exists); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	_, err := h.DB.Exec(`
		INSERT IGNORE INTO wishlist_items (user_id, product_id, created_at)
		VALUES (?, ?, ?)`,
		userID, input.ProductID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Item added to wishlist"})
}

// DeleteWishlistItem is the handler for DELETE /v1/wishlist/:product_id
func (h *Handlers) DeleteWishlistItem(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)
	productIDStr := c.Param("product_id")

	result, err := h.DB.Exec("DELETE FROM wishlist_items WHERE user_id = ? AND product_id = ?", userID, productIDStr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete wishlist item"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Wishlist item removed"})
}
