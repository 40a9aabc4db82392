package match_test

import (
	"github.com/okian/replaymerge/internal/domain/recording"
)

// player builds a header player with a profile derived from its number.
func player(number int, name string, civ, team int) recording.PlayerSettings {
	return recording.PlayerSettings{
		Number:         number,
		Name:           name,
		ProfileID:      "profile-" + name,
		CivID:          civ,
		ColorID:        number - 1,
		ResolvedTeamID: team,
	}
}

// oneVsOne is a two-team game on Arabia where player 2 resigns.
func oneVsOne(ts int64) *recording.Parsed {
	return &recording.Parsed{
		Header: recording.Header{
			Timestamp: ts,
			WorldTime: 1000,
			Settings: recording.GameSettings{
				ResolvedMapID: 9,
				RMSStrings:    []string{"", "SCENARIO:x:Arabia.rms"},
				Players: []recording.PlayerSettings{
					player(1, "Alice", 1, 2),
					player(2, "Bob", 2, 3),
				},
			},
		},
		Operations: []recording.Operation{
			recording.Sync{TimeIncrement: 200},
			recording.Action{Data: recording.Resign{PlayerID: 2}},
			recording.Sync{TimeIncrement: 300},
		},
	}
}

func resign(id int) recording.Operation {
	return recording.Action{Length: 1, Data: recording.Resign{PlayerID: id}}
}
