package models

import "gorm.io/gorm"

// Message is one persisted chat message in a job conversation. Sender and
// receiver are always the two participants of the job's conversation at
// the time of creation. Rows are append-only; CreatedAt is the order key.
type Message struct {
	gorm.Model

	JobID      uint   `gorm:"index;not null"`
	SenderID   uint   `gorm:"index;not null"`
	Sender     User   `gorm:"foreignKey:SenderID"`
	ReceiverID uint   `gorm:"index;not null"`
	Body       string `gorm:"type:text;not null"`
}
