package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/SadiqJ21/Tawsil-Webapp/internal/models"
	"github.com/gin-gonic/gin"
)

// execer lets logActivity run against either *sql.DB or *sql.Tx, so order
// placement can append its log row inside the same transaction.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// logActivity appends one row to the activity log.
func (h *Handlers) logActivity(db execer, logType string, userID int64, userEmail, details string) error {
	query := `
		INSERT INTO activity_logs (type, user_id, user_email, details, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := db.Exec(query, logType, userID, userEmail, details, time.Now())
	return err
}

// GetActivityLogs is the handler for GET /v1/admin/logs
// Returns the newest entries first; ?limit= caps the result (default 50).
func (h *Handlers) GetActivityLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	query := `
		SELECT id, type, user_id, user_email, details, created_at
		FROM activity_logs
		ORDER BY created_at DESC
		LIMIT ?`

	rows, err := h.DB.Query(query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity logs"})
		return
	}
	defer rows.Close()

	var logs []models.ActivityLog
	for rows.Next() {
		var entry models.ActivityLog
		if err := rows.Scan(&entry.ID, &entry.Type, &entry.UserID, &entry.UserEmail, &entry.Details, &entry.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan activity log"})
			return
		}
		logs = append(logs, entry)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating activity logs"})
		return
	}

	if logs == nil {
		logs = []models.ActivityLog{}
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
