package postgres

import (
	"gorm.io/datatypes"
)

/*
 * 'AuctionProfile' defines the structure for a user's auction career. It is
 * referenced in User and WinRecord
 */
type AuctionProfile struct {
	Username          string         `gorm:"primaryKey;size:50;not null"`
	UserStats         datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	UserIcon          int            `gorm:"default:0"`
	TournamentsPlayed int            `gorm:"default:0"`
	TournamentsWon    int            `gorm:"default:0"`

	WinRecords []WinRecord `gorm:"foreignKey:Username"`
}
