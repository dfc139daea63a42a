package models

import "gorm.io/gorm"

// Job is a unit of work posted by a customer. It stays open for bids
// until the customer accepts one; from that moment AcceptedBidID is set,
// IsCompleted flips to true and the two-party conversation for the job
// becomes valid. AcceptedBidID is never changed again.
type Job struct {
	gorm.Model

	CustomerID  uint   `gorm:"index;not null" json:"customer"`
	Customer    User   `gorm:"foreignKey:CustomerID" json:"-"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	IsCompleted bool   `gorm:"default:false" json:"is_completed"`

	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`

	AcceptedBidID *uint `gorm:"index" json:"accepted_bid_id"`
	AcceptedBid   *Bid  `gorm:"foreignKey:AcceptedBidID" json:"accepted_bid,omitempty"`
}

// Bid is a professional's priced offer on a job. Immutable once created.
type Bid struct {
	gorm.Model

	JobID   uint    `gorm:"index;not null" json:"job"`
	Job     *Job    `gorm:"foreignKey:JobID" json:"-"`
	ProID   uint    `gorm:"index;not null" json:"pro"`
	Pro     User    `gorm:"foreignKey:ProID" json:"-"`
	Amount  float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	Details string  `gorm:"type:text" json:"details"`
}
