package model

import (
	"time"
)

// Category groups questions under a unique name. The slug is derived from the
// name at creation time.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
