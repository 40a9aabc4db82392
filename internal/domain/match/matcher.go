package match

import "github.com/okian/replaymerge/internal/domain/recording"

// Matches reports whether rec is another perspective of this game: same map,
// and position by position the same teams holding the same profiles playing
// the same civilizations. Names and colors are not compared. Dummies never
// match, and nothing matches a game that has not been reconstructed yet.
func (g *Game) Matches(rec recording.Recording) bool {
	parsed, ok := rec.(*recording.Parsed)
	if !ok || parsed == nil {
		return false
	}
	state := g.State()
	if !state.Reconstructed {
		return false
	}
	info, err := g.engine.Extract(parsed)
	if err != nil {
		return false
	}
	return state.MapName == info.MapName && SameLineup(state.Teams, info.Teams)
}

// SameLineup compares two team lists positionally by profile and civilization.
func SameLineup(a, b []Team) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		pa, pb := a[i].Players, b[i].Players
		if len(pa) != len(pb) {
			return false
		}
		for j := range pa {
			if pa[j].Profile != pb[j].Profile || pa[j].Civ != pb[j].Civ {
				return false
			}
		}
	}
	return true
}
