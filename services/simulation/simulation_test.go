package simulation

import (
	"testing"

	"Gavel/services/auction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTeams(n int) []auction.Team {
	teams := make([]auction.Team, 0, n)
	names := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot"}
	for i := 0; i < n; i++ {
		teams = append(teams, auction.Team{
			BidKey:     names[i],
			Name:       names[i],
			OwnerName:  "Owner " + names[i],
			TotalSpent: 100 * (i + 1),
			Roster:     []auction.Lot{{ID: "l1"}, {ID: "l2"}},
		})
	}
	return teams
}

func TestRunTournamentNeedsTwoTeams(t *testing.T) {
	s := NewSimulator(1)

	_, err := s.RunTournament(auction.TournamentInput{Teams: makeTeams(1)})
	assert.Error(t, err)
}

func TestTwoTeamTournamentSkipsPlayoffs(t *testing.T) {
	s := NewSimulator(1)

	result, err := s.RunTournament(auction.TournamentInput{
		RoomID: "room1",
		Teams:  makeTeams(2),
	})
	require.NoError(t, err)

	// One league match, no playoffs.
	assert.Len(t, result.Matches, 1)
	assert.Len(t, result.Standings, 2)
	assert.NotEqual(t, result.Winner.TeamName, result.RunnerUp.TeamName)
}

func TestFourTeamTournamentPlaysPlayoffs(t *testing.T) {
	s := NewSimulator(42)

	result, err := s.RunTournament(auction.TournamentInput{
		RoomID: "room1",
		Teams:  makeTeams(4),
	})
	require.NoError(t, err)

	// 6 league matches plus Qualifier 1, Eliminator, Qualifier 2, Final.
	require.Len(t, result.Matches, 10)
	labels := make([]string, 0, 4)
	for _, m := range result.Matches[6:] {
		labels = append(labels, m.Label)
		assert.NotEqual(t, "Tie", m.WinnerName)
	}
	assert.Equal(t, []string{"Qualifier 1", "Eliminator", "Qualifier 2", "Final"}, labels)

	final := result.Matches[9]
	assert.Equal(t, final.WinnerName, result.Winner.TeamName)
}

func TestLeaguePointsAreConsistent(t *testing.T) {
	s := NewSimulator(7)

	result, err := s.RunTournament(auction.TournamentInput{
		RoomID: "room1",
		Teams:  makeTeams(5),
	})
	require.NoError(t, err)

	totalPoints := 0
	totalPlayed := 0
	for _, st := range result.Standings {
		assert.Equal(t, 4, st.Played)
		assert.LessOrEqual(t, st.Won+st.Lost, st.Played)
		totalPoints += st.Points
		totalPlayed += st.Played
	}
	// Every league match hands out exactly 2 points.
	assert.Equal(t, 20, totalPoints)
	assert.Equal(t, 20, totalPlayed)

	// Standings are ordered by points.
	for i := 1; i < len(result.Standings); i++ {
		assert.GreaterOrEqual(t, result.Standings[i-1].Points, result.Standings[i].Points)
	}
}

func TestSameSeedIsDeterministic(t *testing.T) {
	input := auction.TournamentInput{RoomID: "room1", Teams: makeTeams(4)}

	r1, err := NewSimulator(99).RunTournament(input)
	require.NoError(t, err)
	r2, err := NewSimulator(99).RunTournament(input)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
}
