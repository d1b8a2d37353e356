package models

import "time"

// BaseModel is gorm.Model without DeletedAt. Rows are hard-deleted so that
// ON DELETE CASCADE constraints fire at the database level.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
