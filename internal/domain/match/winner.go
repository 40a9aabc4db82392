package match

// Winner is the three-way outcome of a game, read from the boundary teams.
type Winner string

// Winner values. The first team is the left side, the last team the right side.
const (
	WinnerNone  Winner = "none"
	WinnerLeft  Winner = "left"
	WinnerRight Winner = "right"
)

// ResolveWinner reports left when the first team still has a member standing,
// otherwise right when there is more than one team and the last one does,
// otherwise none. Teams in between are never examined.
func ResolveWinner(teams []Team) Winner {
	if len(teams) == 0 {
		return WinnerNone
	}
	if teams[0].Winner && len(teams) > 1 {
		return WinnerLeft
	}
	if len(teams) > 1 && teams[len(teams)-1].Winner {
		return WinnerRight
	}
	return WinnerNone
}
