package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'WinRecord' stores the outcome of one finished tournament for one user.
 * Placement 1 is the winner, 2 the runner-up.
 */
type WinRecord struct {
	ID        uint           `gorm:"primaryKey"`
	Username  string         `gorm:"size:50;not null;index"`
	RoomID    string         `gorm:"size:64;not null"`
	TeamName  string         `gorm:"size:100"`
	Placement int            `gorm:"not null"`
	Standings datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	PlayedAt  time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
}
