package service

import (
	"context"
	"time"

	"github.com/okian/replaymerge/internal/domain/match"
)

// Entry is one file of the archive.
type Entry struct {
	GameIndex   int
	ReplayIndex int
	GameID      int64
	ReplayID    int64

	// Filename is the name the file is archived under.
	Filename string

	// Preview is Filename annotated for display.
	Preview string

	Dummy bool
	File  match.File
}

// Plan lists every file of the match archive in game order, then replay
// order inside each game.
type Plan struct {
	SessionID string
	ZipName   string
	Entries   []Entry
}

// GameSummary is the derived view of one game for display.
type GameSummary struct {
	Index    int
	ID       int64
	Dummy    bool
	Replays  int
	Date     time.Time
	MapName  string
	Duration time.Duration
	Winner   match.Winner
	Teams    []match.Team
}

// Stats reports the size of the session.
type Stats struct {
	SessionID  string
	Games      int
	DummyGames int
	Replays    int
	Digests    int64
}

// Plan names every replay of the session for an archive of the match
// between player1 and player2.
func (s *Service) Plan(ctx context.Context, player1, player2 string) Plan {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan := Plan{
		SessionID: s.ID(),
		ZipName:   s.encoder.ZipFilename(player1, player2),
	}
	for gi, game := range s.store.List(ctx) {
		replays := game.Replays()
		for ri, r := range replays {
			dummy := !r.Success()
			plan.Entries = append(plan.Entries, Entry{
				GameIndex:   gi,
				ReplayIndex: ri,
				GameID:      game.ID(),
				ReplayID:    r.ID(),
				Filename:    s.encoder.ReplayFilename(player1, player2, gi, ri, len(replays)),
				Preview:     s.encoder.ReplayFilenamePreview(player1, player2, gi, ri, len(replays), dummy),
				Dummy:       dummy,
				File:        r.File(),
			})
		}
	}
	return plan
}

// Games summarizes the games of the session in match order.
func (s *Service) Games(ctx context.Context) []GameSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	games := s.store.List(ctx)
	out := make([]GameSummary, 0, len(games))
	for i, g := range games {
		st := g.State()
		out = append(out, GameSummary{
			Index:    i,
			ID:       g.ID(),
			Dummy:    g.IsDummy(),
			Replays:  g.ReplayCount(),
			Date:     st.Date,
			MapName:  st.MapName,
			Duration: time.Duration(st.Duration) * time.Millisecond,
			Winner:   st.Winner,
			Teams:    st.Teams,
		})
	}
	return out
}

// Stats returns session statistics for monitoring.
func (s *Service) Stats(ctx context.Context) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{SessionID: s.ID(), Digests: s.deduper.Size()}
	for _, g := range s.store.List(ctx) {
		st.Games++
		st.Replays += g.ReplayCount()
		if g.IsDummy() {
			st.DummyGames++
		}
	}
	return st
}
