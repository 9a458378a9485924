package handlers

import (
	"net/http"

	"github.com/SadiqJ21/Tawsil-Webapp/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
)

//
// --- Category Handlers ---
//

// CategoryInput defines the JSON for creating or updating a category.
type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// GetAllCategories is the handler for GET /v1/categories
func (h *Handlers) GetAllCategories(c *gin.Context) {
	rows, err := h.DB.Query("SELECT id, name, slug, description FROM categories ORDER BY name ASC")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan category row"})
			return
		}
		categories = append(categories, cat)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating category rows"})
		return
	}

	if categories == nil {
		categories = []models.Category{}
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory is the handler for POST /v1/admin/categories
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat := models.Category{
		Name:        input.Name,
		Slug:        slug.Make(input.Name),
		Description: input.Description,
	}

	query := "INSERT INTO categories (name, slug, description) VALUES (?, ?, ?)"
	result, err := h.DB.Exec(query, cat.Name, cat.Slug, cat.Description)
	if err != nil {
		// Most likely a UNIQUE violation on name or slug.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category already exists or is invalid"})
		return
	}

	id, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get new category ID"})
		return
	}
	cat.ID = id

	c.JSON(http.StatusCreated, gin.H{"category": cat})
}

// UpdateCategory is the handler for PUT /v1/admin/categories/:id
func (h *Handlers) UpdateCategory(c *gin.Context) {
	categoryID := c.Param("id")

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := "UPDATE categories SET name = ?, slug = ?, description = ? WHERE id = ?"
	result, err := h.DB.Exec(query, input.Name, slug.Make(input.Name), input.Description, categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category updated"})
}

// DeleteCategory is the handler for DELETE /v1/admin/categories/:id
// Products keep their rows; their category_id is detached to NULL so the
// catalog never dangles.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	categoryID := c.Param("id")

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE products SET category_id = NULL WHERE category_id = ?", categoryID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach products"})
		return
	}

	result, err := tx.Exec("DELETE FROM categories WHERE id = ?", categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
