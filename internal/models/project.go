package models

import "time"

// Project is owned directly by a user. UserID is set once at creation.
type Project struct {
	ID          uint64 `gorm:"primarykey"`
	Name        string `gorm:"type:varchar(255)"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"type:varchar(50)"`
	DueDate     *time.Time
	UserID      uint64 `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relations
	Tasks []Task `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// OwnedBy reports whether the project belongs to the given user
func (p *Project) OwnedBy(userID uint64) bool {
	return p != nil && p.UserID == userID
}
