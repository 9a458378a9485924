package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/SadiqJ21/Tawsil-Webapp/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
)

//
// --- Product Handlers ---
//

// ProductInput defines the JSON for creating or updating a product.
type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	CategoryID  *int64  `json:"categoryId"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock" binding:"gte=0"`
}

// ListProducts is the handler for GET /v1/products
// Supported query params: category (id), q (name search), sort
// (price_asc | price_desc | newest).
func (h *Handlers) ListProducts(c *gin.Context) {
	query := `
		SELECT p.id, p.name, p.slug, p.description, p.price, p.category_id, p.image, p.stock,
		       p.created_at, p.updated_at, COALESCE(cat.name, '')
		FROM products p
		LEFT JOIN categories cat ON p.category_id = cat.id
		WHERE 1=1`
	args := []interface{}{}

	if category := c.Query("category"); category != "" {
		query += " AND p.category_id = ?"
		args = append(args, category)
	}
	if q := c.Query("q"); q != "" {
		query += " AND p.name LIKE ?"
		args = append(args, "%"+q+"%")
	}

	switch c.Query("sort") {
	case "price_asc":
		query += " ORDER BY p.price ASC"
	case "price_desc":
		query += " ORDER BY p.price DESC"
	default:
		query += " ORDER BY p.created_at DESC"
	}

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CategoryID,
			&p.Image, &p.Stock, &p.CreatedAt, &p.UpdatedAt, &p.CategoryName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan product row"})
			return
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating product rows"})
		return
	}

	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct is the handler for GET /v1/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	productID := c.Param("id")

	var p models.Product
	query := `
		SELECT p.id, p.name, p.slug, p.description, p.price, p.category_id, p.image, p.stock,
		       p.created_at, p.updated_at, COALESCE(cat.name, '')
		FROM products p
		LEFT JOIN categories cat ON p.category_id = cat.id
		WHERE p.id = ?`

	err := h.DB.QueryRow(query, productID).Scan(&p.ID, &p.Name, &p.Slug, &p.Description,
		&p.Price, &p.CategoryID, &p.Image, &p.Stock, &p.CreatedAt, &p.UpdatedAt, &p.CategoryName)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": p})
}

// CreateProduct is the handler for POST /v1/admin/products
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	query := `
		INSERT INTO products (name, slug, description, price, category_id, image, stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := h.DB.Exec(query, input.Name, slug.Make(input.Name), input.Description,
		input.Price, input.CategoryID, input.Image, input.Stock, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	id, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get new product ID"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Product created",
		"productId": id,
	})
}

// UpdateProduct is the handler for PUT /v1/admin/products/:id
func (h *Handlers) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := `
		UPDATE products
		SET name = ?, slug = ?, description = ?, price = ?, category_id = ?, image = ?, stock = ?, updated_at = ?
		WHERE id = ?`

	result, err := h.DB.Exec(query, input.Name, slug.Make(input.Name), input.Description,
		input.Price, input.CategoryID, input.Image, input.Stock, time.Now(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// DeleteProduct is the handler for DELETE /v1/admin/products/:id
// Cart and wishlist references go with it; order lines keep their snapshotted
// name and price, so order history survives the deletion.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cart_items WHERE product_id = ?", productID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart references"})
		return
	}
	if _, err := tx.Exec("DELETE FROM wishlist_items WHERE product_id = ?", productID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove wishlist references"})
		return
	}

	result, err := tx.Exec("DELETE FROM products WHERE id = ?", productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
