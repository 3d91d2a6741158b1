package dbmysql

import "time"

type Chat struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:100" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsGroup     bool      `json:"is_group"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	CreatedByID string    `gorm:"size:36;not null;index" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChatMember is the durable (chat, user) relationship row: admin flag and
// per-member read cursor. The composite key guarantees one row per pair.
type ChatMember struct {
	ChatID     string     `gorm:"primaryKey;size:36" json:"chat_id"`
	UserID     string     `gorm:"primaryKey;size:36" json:"user_id"`
	IsAdmin    bool       `json:"is_admin"`
	JoinedAt   time.Time  `json:"joined_at"`
	LastReadAt *time.Time `json:"last_read_at"`
}
