package entity

import (
	"time"
)

// Base holds the store-generated columns.
type Base struct {
	ID        int64     `db:"id" json:"id"`
	CreatedAt time.Time `db:"createdAt" json:"createdAt"`
}
