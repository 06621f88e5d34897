package postgres

import (
	"time"
)

/*
 * 'User' contains the blueprint definition of a User. It contains a reference
 * to AuctionProfile
 */
type User struct {
	Email        string    `gorm:"primaryKey;size:100;not null"`
	Username     string    `gorm:"size:50;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	FullName     string    `gorm:"size:100"`
	MemberSince  time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationship with the auction profile
	AuctionProfile AuctionProfile `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE"`
}
