package models

import "time"

// Task is owned transitively through its project.
type Task struct {
	ID          uint64 `gorm:"primarykey"`
	Title       string `gorm:"type:varchar(255)"`
	Description string `gorm:"type:text"`
	Completed   bool   `gorm:"not null;default:false"`
	Priority    string `gorm:"type:varchar(50)"`
	DueDate     *time.Time
	ProjectID   uint64 `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
