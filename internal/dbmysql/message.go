package dbmysql

import "time"

// Message rows are append-mostly. Seq is the insertion sequence used to
// break ordering ties when sent_at has coarser resolution than arrival
// rate; the public identifier is the uuid ID.
type Message struct {
	Seq       uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ID        string    `gorm:"uniqueIndex;size:36;not null" json:"id"`
	ChatID    string    `gorm:"index;size:36;not null" json:"chat_id"`
	SenderID  string    `gorm:"index;size:36;not null" json:"sender_id"`
	Content   string    `gorm:"type:text" json:"content"`
	SentAt    time.Time `gorm:"index" json:"sent_at"`
	IsEdited  bool      `json:"is_edited"`
	IsDeleted bool      `json:"is_deleted"`

	Attachments []Attachment `gorm:"foreignKey:MessageID;references:ID" json:"attachments"`
}

type Attachment struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	MessageID   *string   `gorm:"index;size:36" json:"message_id"`
	UploaderID  string    `gorm:"index;size:36;not null" json:"-"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	FileSize    int64     `json:"file_size"`
	StorageID   string    `gorm:"size:64;not null" json:"-"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
