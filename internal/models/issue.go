package models

import "time"

type Issue struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"not null;index" json:"-"`
	Description string    `gorm:"not null" json:"description"`
	ActionTaken string    `json:"actionTaken"`
	CreatedAt   time.Time `json:"-"`
}
