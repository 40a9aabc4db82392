// Package match reconstructs games from replay recordings.
//
// A Game aggregates every recording of one match contributed by different
// players. Its derived state (date, map, duration, resignations, teams,
// winner) always comes from the latest successful recording by header
// timestamp and is replaced as a whole on each update.
//
// A Game has a single writer. Callers importing recordings from several
// sources must serialize AddRecording/AddReplay for the same Game. State
// may be read concurrently with a writer.
package match

import (
	"cmp"
	"slices"
	"sync/atomic"
	"time"

	"github.com/okian/replaymerge/internal/domain/lookup"
	"github.com/okian/replaymerge/internal/domain/recording"
)

// File references the source of a replay.
type File struct {
	Name string
	Data []byte
}

// Replay is one recording file of a game. It is immutable once created.
type Replay struct {
	id   int64
	file File
	rec  recording.Recording
	info *RecordingInfo // nil for dummies
}

// ID returns the replay id.
func (r *Replay) ID() int64 { return r.id }

// File returns the source file.
func (r *Replay) File() File { return r.file }

// Recording returns the parsed recording.
func (r *Replay) Recording() recording.Recording { return r.rec }

// Success is true when the recording parsed.
func (r *Replay) Success() bool { return r.info != nil }

// Info returns the derived recording info of a successful recording.
func (r *Replay) Info() (RecordingInfo, bool) {
	if r.info == nil {
		return RecordingInfo{}, false
	}
	return *r.info, true
}

// State is the derived state of a game. Values are never modified after
// they are published; treat the slices as read-only.
type State struct {
	// Date is the match start, zero when unknown.
	Date         time.Time
	MapName      string
	Duration     int64
	Resignations []int
	Teams        []Team
	Winner       Winner
	// Reconstructed is true once a successful recording has been folded in.
	// Otherwise only Date may be set.
	Reconstructed bool
}

// HasDate reports whether the date is known.
func (s State) HasDate() bool { return !s.Date.IsZero() }

func stateFromInfo(info RecordingInfo) *State {
	return &State{
		Date:          info.Date,
		MapName:       info.MapName,
		Duration:      info.Duration,
		Resignations:  info.Resignations,
		Teams:         info.Teams,
		Winner:        ResolveWinner(info.Teams),
		Reconstructed: true,
	}
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithNames sets the map and civilization tables.
func WithNames(names Names) Option {
	return func(e *Engine) {
		if names != nil {
			e.names = names
		}
	}
}

// WithGameSequence sets the id source for games.
func WithGameSequence(seq Sequence) Option {
	return func(e *Engine) {
		if seq != nil {
			e.games = seq
		}
	}
}

// WithReplaySequence sets the id source for replays.
func WithReplaySequence(seq Sequence) Option {
	return func(e *Engine) {
		if seq != nil {
			e.replays = seq
		}
	}
}

// Engine creates replays and games sharing one set of tables and id sequences.
type Engine struct {
	names   Names
	games   Sequence
	replays Sequence
}

// New creates an Engine with the built-in names tables and sequences starting at 0.
func New(opts ...Option) *Engine {
	e := &Engine{
		names:   lookup.New(),
		games:   NewCounter(0),
		replays: NewCounter(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract derives the recording info of a parsed recording.
func (e *Engine) Extract(rec *recording.Parsed) (RecordingInfo, error) {
	return ExtractRecordingInfo(rec, e.names)
}

// NewReplay wraps a file and its recording. Parsed recordings are derived
// immediately; a malformed header fails with ErrMalformedHeader and no id
// is consumed. A nil recording counts as a dummy without timestamp.
func (e *Engine) NewReplay(file File, rec recording.Recording) (*Replay, error) {
	r := &Replay{file: file, rec: rec}
	switch v := rec.(type) {
	case *recording.Parsed:
		info, err := e.Extract(v)
		if err != nil {
			return nil, err
		}
		r.info = &info
	case *recording.Dummy:
	case nil:
		r.rec = &recording.Dummy{}
	}
	r.id = e.replays.Next()
	return r, nil
}

// NewGame creates a game from an initial batch of replays. The first replay
// decides the initial state: full derivation when it parsed, the date alone
// otherwise.
func (e *Engine) NewGame(replays ...*Replay) *Game {
	g := &Game{
		id:      e.games.Next(),
		engine:  e,
		replays: slices.Clone(replays),
	}
	state := &State{Winner: WinnerNone}
	if len(replays) > 0 {
		first := replays[0]
		if info, ok := first.Info(); ok {
			state = stateFromInfo(info)
		} else {
			state.Date = unixDate(first.Recording().Timestamp())
		}
	}
	g.state.Store(state)
	return g
}

// Game is the aggregate of every recording of one match.
type Game struct {
	id      int64
	engine  *Engine
	replays []*Replay
	state   atomic.Pointer[State]
}

// ID returns the game id.
func (g *Game) ID() int64 { return g.id }

// State returns the current derived state.
func (g *Game) State() State { return *g.state.Load() }

// Replays returns the replays ordered by header timestamp.
func (g *Game) Replays() []*Replay { return slices.Clone(g.replays) }

// ReplayCount returns the number of replays.
func (g *Game) ReplayCount() int { return len(g.replays) }

// IsDummy reports whether no replay of the game parsed.
func (g *Game) IsDummy() bool {
	return !slices.ContainsFunc(g.replays, (*Replay).Success)
}

// AddRecording wraps file and rec as a new replay and adds it, see AddReplay.
// It only fails when rec parsed but its header is malformed, in which case
// the game is left untouched.
func (g *Game) AddRecording(file File, rec recording.Recording) (*Replay, error) {
	r, err := g.engine.NewReplay(file, rec)
	if err != nil {
		return nil, err
	}
	g.AddReplay(r)
	return r, nil
}

// AddReplay appends r, re-sorts the replays by header timestamp and
// recomputes the state from the last successful replay. When no replay
// parsed the state is kept as is. Duplicates are kept; deduplication is the
// caller's decision.
func (g *Game) AddReplay(r *Replay) {
	replays := append(slices.Clone(g.replays), r)
	slices.SortStableFunc(replays, func(a, b *Replay) int {
		return cmp.Compare(a.Recording().Timestamp(), b.Recording().Timestamp())
	})
	g.replays = replays

	for i := len(replays) - 1; i >= 0; i-- {
		if info, ok := replays[i].Info(); ok {
			g.state.Store(stateFromInfo(info))
			return
		}
	}
}
