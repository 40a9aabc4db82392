package match

import (
	"fmt"
	"slices"

	"github.com/okian/replaymerge/internal/domain/recording"
)

// TeamID identifies a team within one recording.
//
// Players the header lists without a team get a solo id bound to their
// header position. Solo ids live in their own space and never collide with
// a resolved team id.
type TeamID struct {
	Value int  // resolved team id, zero for solo teams
	Solo  bool // player had no team assigned
	Slot  int  // header position of the solo player
}

// ResolvedTeam returns the id of a team the header assigned.
func ResolvedTeam(value int) TeamID { return TeamID{Value: value} }

// SoloTeam returns the id of the singleton team for the player at slot.
func SoloTeam(slot int) TeamID { return TeamID{Solo: true, Slot: slot} }

func (id TeamID) String() string {
	if id.Solo {
		return fmt.Sprintf("solo-%d", id.Slot)
	}
	return fmt.Sprintf("team-%d", id.Value)
}

// Player is one participant as seen by a recording.
type Player struct {
	ID       int    // in-game player number
	Name     string // display name, may differ between recordings
	Profile  string // stable identity of the participant
	Civ      string
	Team     TeamID
	Color    int // 1-based
	Resigned bool
}

// Team groups players sharing a team id.
type Team struct {
	ID      TeamID
	Players []Player
	// Winner is true iff at least one member did not resign.
	Winner bool
}

// NewTeam builds a team and derives its winner flag.
func NewTeam(id TeamID, players []Player) Team {
	return Team{
		ID:      id,
		Players: players,
		Winner: slices.ContainsFunc(players, func(p Player) bool {
			return !p.Resigned
		}),
	}
}

// CivNamer resolves civilization ids. It must not fail on unknown ids.
type CivNamer interface {
	CivName(id int) string
}

// BuildTeams groups header players into teams. Teams come out in the order
// their id is first met in the header and players keep header order inside
// each team, so two recordings of one game enumerate them alike.
func BuildTeams(players []recording.PlayerSettings, resignations []int, civs CivNamer) []Team {
	var (
		order   []TeamID
		members = make(map[TeamID][]Player)
	)
	for slot, ps := range players {
		id := ResolvedTeam(ps.ResolvedTeamID)
		if ps.ResolvedTeamID == recording.NoTeam {
			id = SoloTeam(slot)
		}
		if _, seen := members[id]; !seen {
			order = append(order, id)
		}
		members[id] = append(members[id], Player{
			ID:       ps.Number,
			Name:     ps.Name,
			Profile:  ps.ProfileID,
			Civ:      civs.CivName(ps.CivID),
			Team:     id,
			Color:    ps.ColorID + 1,
			Resigned: slices.Contains(resignations, ps.Number),
		})
	}

	teams := make([]Team, 0, len(order))
	for _, id := range order {
		teams = append(teams, NewTeam(id, members[id]))
	}
	return teams
}
