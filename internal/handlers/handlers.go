package handlers

import "database/sql"

// Handlers holds the shared dependencies for every HTTP handler.
type Handlers struct {
	DB *sql.DB
}
