package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User represents any account in the marketplace. The IsPro flag
// distinguishes professionals (who bid on jobs) from customers (who post
// them).
type User struct {
	gorm.Model

	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"index" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsPro        bool   `gorm:"default:false" json:"is_pro"`
	PhoneNumber  string `json:"phone_number"`
}

// DisplayName returns "First Last" when either name is set, otherwise the
// username. This is the name shown next to chat messages.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// ProProfile holds the extra public information for a professional user.
type ProProfile struct {
	gorm.Model

	UserID          uint           `gorm:"uniqueIndex;not null"`
	User            User           `gorm:"foreignKey:UserID"`
	Bio             string         `gorm:"type:text"`
	ServiceAreaZips pq.StringArray `gorm:"type:text[]"` // zip codes served
	YearsExperience int
}

// ChatToken is an opaque credential presented on the websocket handshake.
// Browsers cannot set headers on a WebSocket upgrade, so the key travels
// as a query parameter and is resolved against this table.
type ChatToken struct {
	Key       string    `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	User      User      `gorm:"foreignKey:UserID"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
