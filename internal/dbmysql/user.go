package dbmysql

import "time"

type User struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	Username          string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email             string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash      string    `gorm:"size:255;not null" json:"-"`
	ProfilePictureURL string    `gorm:"size:512" json:"profile_picture_url"`
	CreatedAt         time.Time `json:"created_at"`
	LastActive        time.Time `json:"last_active"`
}
