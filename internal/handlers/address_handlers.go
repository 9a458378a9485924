package handlers

import (
	"database/sql"
	"net/http"

	"github.com/SadiqJ21/Tawsil-Webapp/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Address Handlers ---
//

// AddressInput defines the JSON for creating or updating an address.
type AddressInput struct {
	Name       string `json:"name" binding:"required"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country" binding:"required"`
	IsDefault  bool   `json:"isDefault"`
}

// ListAddresses is the handler for GET /v1/addresses
func (h *Handlers) ListAddresses(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	query := `
		SELECT id, user_id, name, street, city, state, postal_code, country, is_default
		FROM addresses
		WHERE user_id = ?
		ORDER BY is_default DESC, id ASC`

	rows, err := h.DB.Query(query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
		return
	}
	defer rows.Close()

	var addresses []models.Address
	for rows.Next() {
		var a models.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Street, &a.City, &a.State,
			&a.PostalCode, &a.Country, &a.IsDefault); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan address row"})
			return
		}
		addresses = append(addresses, a)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating address rows"})
		return
	}

	if addresses == nil {
		addresses = []models.Address{}
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// CreateAddress is the handler for POST /v1/addresses
// Marking the new address default clears the flag on the user's others first,
// inside one transaction, so at most one default survives.
func (h *Handlers) CreateAddress(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	var input AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	if input.IsDefault {
		if _, err := tx.Exec("UPDATE addresses SET is_default = false WHERE user_id = ?", userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear default address"})
			return
		}
	}

	query := `
		INSERT INTO addresses (user_id, name, street, city, state, postal_code, country, is_default)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.Exec(query, userID, input.Name, input.Street, input.City,
		input.State, input.PostalCode, input.Country, input.IsDefault)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
		return
	}

	id, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get new address ID"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Address created",
		"addressId": id,
	})
}

// UpdateAddress is the handler for PUT /v1/addresses/:id
func (h *Handlers) UpdateAddress(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)
	addressID := c.Param("id")

	var input AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	// Ownership check before touching anything.
	var ownerID int64
	err = tx.QueryRow("SELECT user_id FROM addresses WHERE id = ?", addressID).Scan(&ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
		return
	}
	if ownerID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	if input.IsDefault {
		if _, err := tx.Exec("UPDATE addresses SET is_default = false WHERE user_id = ? AND id <> ?", userID, addressID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear default address"})
			return
		}
	}

	query := `
		UPDATE addresses
		SET name = ?, street = ?, city = ?, state = ?, postal_code = ?, country = ?, is_default = ?
		WHERE id = ? AND user_id = ?`

	if _, err := tx.Exec(query, input.Name, input.Street, input.City, input.State,
		input.PostalCode, input.Country, input.IsDefault, addressID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address updated"})
}

// DeleteAddress is the handler for DELETE /v1/addresses/:id
func (h *Handlers) DeleteAddress(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)
	addressID := c.Param("id")

	result, err := h.DB.Exec("DELETE FROM addresses WHERE id = ? AND user_id = ?", addressID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}
