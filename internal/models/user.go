package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey"`
	Username     string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Relations
	Projects []Project `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
