package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/okian/replaymerge/internal/domain/match"
	"github.com/okian/replaymerge/internal/domain/recording"
)

func parsedAt(ts int64, mapID int) *recording.Parsed {
	return &recording.Parsed{
		Header: recording.Header{
			Timestamp: ts,
			Settings: recording.GameSettings{
				ResolvedMapID: mapID,
				Players: []recording.PlayerSettings{
					{Number: 1, Name: "Alice", ProfileID: "1", CivID: 1, ResolvedTeamID: 2},
					{Number: 2, Name: "Bob", ProfileID: "2", CivID: 2, ResolvedTeamID: 3},
				},
			},
		},
		Operations: []recording.Operation{},
	}
}

func newGame(t *testing.T, e *match.Engine, rec recording.Recording) *match.Game {
	t.Helper()
	r, err := e.NewReplay(match.File{Name: "rec.aoe2record"}, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return e.NewGame(r)
}

func ids(games []*match.Game) []int64 {
	out := make([]int64, 0, len(games))
	for _, g := range games {
		out = append(out, g.ID())
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMemoryStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx)
	engine := match.New()

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	g := newGame(t, engine, parsedAt(100, 9))
	if err := store.Append(ctx, g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	got, err := store.Get(ctx, g.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != g {
		t.Error("expected the stored game back")
	}

	idx, err := store.Index(ctx, g.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 0 {
		t.Errorf("expected index 0, got %d", idx)
	}

	if err := store.Append(ctx, g); !errors.Is(err, ErrDuplicateGame) {
		t.Errorf("expected ErrDuplicateGame, got %v", err)
	}

	if err := store.Remove(ctx, g.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(ctx, g.ID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := store.Remove(ctx, g.ID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestMemoryStore_Ordering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx)
	engine := match.New()

	var want []int64
	for i := 0; i < 4; i++ {
		g := newGame(t, engine, parsedAt(int64(100*(i+1)), 9+i))
		if err := store.Append(ctx, g); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want = append(want, g.ID())
	}
	if got := ids(store.List(ctx)); !equalIDs(got, want) {
		t.Fatalf("expected insertion order %v, got %v", want, got)
	}

	// Move the last game to the front.
	if err := store.Move(ctx, want[3], 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	moved := []int64{want[3], want[0], want[1], want[2]}
	if got := ids(store.List(ctx)); !equalIDs(got, moved) {
		t.Errorf("expected %v after move, got %v", moved, got)
	}

	if err := store.Move(ctx, want[0], 4); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("expected ErrInvalidPosition, got %v", err)
	}
	if err := store.Move(ctx, 999, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// List returns a copy.
	list := store.List(ctx)
	list[0] = nil
	if store.List(ctx)[0] == nil {
		t.Error("expected List to return a copy")
	}
}

func TestMemoryStore_FindMatching(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx)
	engine := match.New()

	arabia := newGame(t, engine, parsedAt(100, 9))
	arena := newGame(t, engine, parsedAt(200, 29))
	for _, g := range []*match.Game{arabia, arena} {
		if err := store.Append(ctx, g); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, ok := store.FindMatching(ctx, parsedAt(300, 29))
	if !ok {
		t.Fatal("expected a matching game")
	}
	if got != arena {
		t.Errorf("expected game %d, got %d", arena.ID(), got.ID())
	}

	if _, ok := store.FindMatching(ctx, parsedAt(300, 10)); ok {
		t.Error("expected no game on another map")
	}
	if _, ok := store.FindMatching(ctx, &recording.Dummy{TS: 300}); ok {
		t.Error("expected a dummy recording to match nothing")
	}
}

func TestMemoryStore_Observer(t *testing.T) {
	ctx := context.Background()
	var games, dummies int
	store := NewMemoryStore(ctx, WithObserver(func(g, d int) {
		games, dummies = g, d
	}))
	engine := match.New()

	parsed := newGame(t, engine, parsedAt(100, 9))
	dummy := newGame(t, engine, &recording.Dummy{TS: 50})
	if err := store.Append(ctx, parsed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Append(ctx, dummy); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if games != 2 || dummies != 1 {
		t.Errorf("expected 2 games and 1 dummy, got %d and %d", games, dummies)
	}

	if _, err := dummy.AddRecording(match.File{Name: "b"}, parsedAt(60, 9)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.Touch(ctx)
	if dummies != 0 {
		t.Errorf("expected 0 dummies after attaching a parsed recording, got %d", dummies)
	}

	if err := store.Remove(ctx, parsed.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if games != 1 {
		t.Errorf("expected 1 game after remove, got %d", games)
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx)
	engine := match.New()

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				r, err := engine.NewReplay(match.File{Name: "x"}, &recording.Dummy{TS: int64(i)})
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				if err := store.Append(ctx, engine.NewGame(r)); err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				_ = store.List(ctx)
				_, _ = store.FindMatching(ctx, parsedAt(1, 9))
			}
		}()
	}
	wg.Wait()

	if count := store.Count(ctx); count != workers*perWorker {
		t.Errorf("expected %d games, got %d", workers*perWorker, count)
	}
}
