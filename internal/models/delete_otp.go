package models

import "time"

// DeleteOTP gates destructive will deletion: a short-lived 6-digit code sent
// by email. At most one per will; a new request replaces any outstanding code.
// The row is removed on success, expiry, or after five failed attempts.
type DeleteOTP struct {
	WillID    string    `gorm:"primaryKey;size:36" json:"willId"`
	Code      string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	Attempts  int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
