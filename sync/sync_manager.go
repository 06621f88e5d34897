package sync

import (
	"encoding/json"
	"fmt"
	"log"

	"Gavel/models/postgres"
	"Gavel/services/auction"

	"gorm.io/gorm"
)

// SyncManager persists finished-tournament state from the in-memory rooms
// into PostgreSQL. Only teams owned by a registered account (one with an
// email on the claim) are recorded; guest owners leave no trace.
type SyncManager struct {
	db *gorm.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(db *gorm.DB) *SyncManager {
	return &SyncManager{db: db}
}

// RecordTournament writes one WinRecord per placed team and bumps the
// owners' profile counters. Implements auction.ResultsRecorder.
func (sm *SyncManager) RecordTournament(snap *auction.RoomSnapshot, result *auction.TournamentResult) error {
	if snap == nil || result == nil {
		return fmt.Errorf("missing snapshot or result")
	}

	standingsJSON, err := json.Marshal(result.Standings)
	if err != nil {
		return fmt.Errorf("error marshaling standings: %v", err)
	}

	return sm.db.Transaction(func(tx *gorm.DB) error {
		for _, team := range snap.Teams {
			if team.OwnerEmail == "" {
				continue
			}

			var user postgres.User
			if err := tx.Where("email = ?", team.OwnerEmail).First(&user).Error; err != nil {
				log.Printf("[SYNC] no account for %s, skipping record: %v", team.OwnerEmail, err)
				continue
			}

			placement := placementFor(team.Name, result)
			record := postgres.WinRecord{
				Username:  user.Username,
				RoomID:    snap.RoomID,
				TeamName:  team.Name,
				Placement: placement,
				Standings: standingsJSON,
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("error creating win record: %v", err)
			}

			updates := map[string]interface{}{
				"tournaments_played": gorm.Expr("tournaments_played + 1"),
			}
			if placement == 1 {
				updates["tournaments_won"] = gorm.Expr("tournaments_won + 1")
			}
			if err := tx.Model(&postgres.AuctionProfile{}).
				Where("username = ?", user.Username).
				Updates(updates).Error; err != nil {
				return fmt.Errorf("error updating auction profile: %v", err)
			}
		}
		return nil
	})
}

// placementFor maps a team name to its final placement: 1 for the winner,
// 2 for the runner-up, otherwise the league standing position.
func placementFor(teamName string, result *auction.TournamentResult) int {
	if result.Winner.TeamName == teamName {
		return 1
	}
	if result.RunnerUp.TeamName == teamName {
		return 2
	}
	for i, st := range result.Standings {
		if st.TeamName == teamName {
			return i + 1
		}
	}
	return len(result.Standings)
}
