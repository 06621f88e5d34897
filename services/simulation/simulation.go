package simulation

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"Gavel/services/auction"
)

const oversPerInnings = 20

// Simulator plays out a T20-style tournament between the auction teams:
// a single round robin followed by playoffs when four or more teams take
// part. Scores are random but weighted by how strong a roster each owner
// assembled at the auction.
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulator(seed int64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed))}
}

type tourneyTeam struct {
	team     auction.Team
	strength int

	played, won, lost, pts  int
	runsScored, runsAgainst int
	oversFaced, oversBowled int
	nrr                     float64
}

// teamStrength rates a roster. Money spent well at the auction translates
// into a scoring edge; a submitted squad with a captain adds a little more.
func teamStrength(t auction.Team, squads map[string]auction.SquadSubmission) int {
	strength := 100 + t.TotalSpent/10 + 5*len(t.Roster)
	if sub, ok := squads[t.BidKey]; ok {
		strength += 2 * len(sub.Squad)
		if sub.Captain != "" {
			strength += 10
		}
	}
	return strength
}

// RunTournament satisfies auction.TournamentRunner.
func (s *Simulator) RunTournament(input auction.TournamentInput) (*auction.TournamentResult, error) {
	if len(input.Teams) < 2 {
		return nil, errors.New("need at least 2 teams to simulate")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	teams := make([]*tourneyTeam, 0, len(input.Teams))
	for _, t := range input.Teams {
		teams = append(teams, &tourneyTeam{
			team:     t,
			strength: teamStrength(t, input.Squads),
		})
	}

	var matches []auction.MatchResult

	// League stage, single round robin.
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			m := s.playMatch(teams[i], teams[j], "League")
			s.applyLeaguePoints(teams[i], teams[j], m)
			matches = append(matches, m)
		}
	}

	for _, t := range teams {
		runRate := float64(t.runsScored) / float64(t.oversFaced)
		concededRate := float64(t.runsAgainst) / float64(t.oversBowled)
		t.nrr = runRate - concededRate
	}

	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].pts != teams[j].pts {
			return teams[i].pts > teams[j].pts
		}
		return teams[i].nrr > teams[j].nrr
	})

	champion, runnerUp := teams[0], teams[1]

	if len(teams) >= 4 {
		q1 := s.playMatch(teams[0], teams[1], "Qualifier 1")
		eli := s.playMatch(teams[2], teams[3], "Eliminator")

		winnerQ1, loserQ1 := pickWinner(teams[0], teams[1], q1)
		winnerEli, _ := pickWinner(teams[2], teams[3], eli)

		q2 := s.playMatch(loserQ1, winnerEli, "Qualifier 2")
		winnerQ2, _ := pickWinner(loserQ1, winnerEli, q2)

		final := s.playMatch(winnerQ1, winnerQ2, "Final")
		champion, runnerUp = pickWinner(winnerQ1, winnerQ2, final)

		matches = append(matches, q1, eli, q2, final)
	}

	standings := make([]auction.Standing, 0, len(teams))
	for _, t := range teams {
		standings = append(standings, t.standing())
	}

	return &auction.TournamentResult{
		Winner:    champion.standing(),
		RunnerUp:  runnerUp.standing(),
		Standings: standings,
		Matches:   matches,
	}, nil
}

func (t *tourneyTeam) standing() auction.Standing {
	return auction.Standing{
		TeamName:   t.team.Name,
		OwnerName:  t.team.OwnerName,
		Played:     t.played,
		Won:        t.won,
		Lost:       t.lost,
		Points:     t.pts,
		NetRunRate: t.nrr,
	}
}

// playMatch produces one scored match. Knockout matches never tie: the
// stronger innings gets a super-over nudge.
func (s *Simulator) playMatch(home, away *tourneyTeam, label string) auction.MatchResult {
	homeScore := s.inningsScore(home.strength)
	awayScore := s.inningsScore(away.strength)

	if label != "League" {
		for homeScore == awayScore {
			if s.rng.Intn(2) == 0 {
				homeScore++
			} else {
				awayScore++
			}
		}
	}

	winner := "Tie"
	if homeScore > awayScore {
		winner = home.team.Name
	} else if awayScore > homeScore {
		winner = away.team.Name
	}

	return auction.MatchResult{
		Label:      label,
		HomeTeam:   home.team.Name,
		AwayTeam:   away.team.Name,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		WinnerName: winner,
	}
}

func (s *Simulator) inningsScore(strength int) int {
	base := 110 + s.rng.Intn(60)
	return base + strength/10 + s.rng.Intn(strength/20+1)
}

func (s *Simulator) applyLeaguePoints(home, away *tourneyTeam, m auction.MatchResult) {
	home.played++
	away.played++

	switch m.WinnerName {
	case "Tie":
		home.pts++
		away.pts++
	case home.team.Name:
		home.won++
		home.pts += 2
		away.lost++
	default:
		away.won++
		away.pts += 2
		home.lost++
	}

	home.runsScored += m.HomeScore
	home.runsAgainst += m.AwayScore
	away.runsScored += m.AwayScore
	away.runsAgainst += m.HomeScore

	home.oversFaced += oversPerInnings
	home.oversBowled += oversPerInnings
	away.oversFaced += oversPerInnings
	away.oversBowled += oversPerInnings
}

func pickWinner(a, b *tourneyTeam, m auction.MatchResult) (winner, loser *tourneyTeam) {
	if m.WinnerName == a.team.Name {
		return a, b
	}
	if m.WinnerName == b.team.Name {
		return b, a
	}
	// Ties are nudged away in knockout play; this is unreachable but keeps
	// the function total.
	panic(fmt.Sprintf("knockout match %q ended without a winner", m.Label))
}
