// Package service runs one import session: it places uploaded recordings
// into games and plans the archive of the resulting match.
//
// Every write goes through the session lock, so games are only mutated by
// one goroutine at a time while decoding may run in parallel.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	repository "github.com/okian/replaymerge/internal/adapters/repository"
	"github.com/okian/replaymerge/internal/domain/dedupe"
	"github.com/okian/replaymerge/internal/domain/match"
	"github.com/okian/replaymerge/internal/domain/naming"
	"github.com/okian/replaymerge/internal/domain/recording"
	"github.com/okian/replaymerge/pkg/logger"
	"github.com/okian/replaymerge/pkg/metrics"
)

const defaultDedupeSize = 10_000

// Outcome tells how an upload was placed.
type Outcome string

// Import outcomes.
const (
	OutcomeMerged    Outcome = "merged"
	OutcomeNewGame   Outcome = "new_game"
	OutcomeAttached  Outcome = "attached"
	OutcomeDuplicate Outcome = "duplicate"
)

// Upload is one uploaded replay file with the parser output for it.
type Upload struct {
	File   match.File
	Parsed []byte
}

// Result describes where an upload went.
type Result struct {
	Outcome  Outcome
	GameID   int64
	ReplayID int64

	// Dummy is set when the recording is kept without derived state.
	Dummy bool

	// Err holds the decode or header error that made the recording a dummy.
	Err error
}

// Service owns the games of one session.
type Service struct {
	mu sync.Mutex

	id            uuid.UUID
	store         repository.Store
	deduper       dedupe.Deduper
	dedupeSize    int
	engine        *match.Engine
	encoder       *naming.Encoder
	decodeWorkers int

	metrics *metrics.Manager
	logger  logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dedupeSize:    defaultDedupeSize,
		decodeWorkers: runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.id == uuid.Nil {
		s.id = uuid.New()
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	if s.metrics == nil {
		s.metrics = metrics.Default()
	}
	if s.engine == nil {
		s.engine = match.New()
	}
	if s.encoder == nil {
		s.encoder = naming.New()
	}
	if s.deduper == nil {
		s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore(context.Background(),
			repository.WithObserver(s.metrics.UpdateGames))
	}
	s.logger = s.logger.Named("session").With(logger.String("session", s.id.String()))
	return s
}

// ID returns the session id.
func (s *Service) ID() string { return s.id.String() }

// Import places rec into the game it is another recording of, or starts a
// new game. Uploads whose bytes were already imported are skipped.
func (s *Service) Import(ctx context.Context, file match.File, rec recording.Recording) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if rec == nil {
		rec = &recording.Dummy{}
	}

	key, ok := s.digest(file)
	if ok && s.deduper.SeenAndRecord(ctx, key) {
		s.metrics.RecordDuplicate()
		s.logger.Info(ctx, "duplicate upload skipped", logger.String("file", file.Name))
		return Result{Outcome: OutcomeDuplicate}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	res, err := s.place(ctx, file, rec)
	if err != nil {
		if ok {
			s.deduper.Unrecord(ctx, key)
		}
		return Result{}, err
	}
	s.finish(ctx, file, res, start)
	return res, nil
}

// ImportBatch decodes the parser output of every upload in parallel and
// then imports them one by one in input order. Outputs that do not decode
// are imported as dummies with their error set on the result.
func (s *Service) ImportBatch(ctx context.Context, uploads []Upload) ([]Result, error) {
	recs := make([]recording.Recording, len(uploads))
	decodeErrs := make([]error, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.decodeWorkers)
	for i, up := range uploads {
		i, up := i, up
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := recording.Decode(up.Parsed)
			if err != nil {
				decodeErrs[i] = err
				rec = &recording.Dummy{}
			}
			recs[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(uploads))
	for i, up := range uploads {
		if err := decodeErrs[i]; err != nil {
			s.metrics.RecordDecodeError()
			s.logger.Warn(ctx, "parser output did not decode, keeping file as dummy",
				logger.String("file", up.File.Name), logger.Error(err))
		}
		res, err := s.Import(ctx, up.File, recs[i])
		if err != nil {
			return results, fmt.Errorf("import %s: %w", up.File.Name, err)
		}
		if res.Err == nil {
			res.Err = decodeErrs[i]
		}
		results = append(results, res)
	}
	return results, nil
}

// Attach adds rec to the game with the given id regardless of matching.
// It is how a caller files a dummy recording under the game it belongs to.
func (s *Service) Attach(ctx context.Context, gameID int64, file match.File, rec recording.Recording) (Result, error) {
	if rec == nil {
		rec = &recording.Dummy{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := s.store.Get(ctx, gameID)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	replay, recErr := s.addTo(ctx, game, file, rec)
	s.store.Touch(ctx)

	res := Result{
		Outcome:  OutcomeAttached,
		GameID:   game.ID(),
		ReplayID: replay.ID(),
		Dummy:    !replay.Success(),
		Err:      recErr,
	}
	if key, ok := s.digest(file); ok {
		s.deduper.SeenAndRecord(ctx, key)
	}
	s.finish(ctx, file, res, start)
	return res, nil
}

// MoveGame places the game with the given id at position to of the match.
func (s *Service) MoveGame(ctx context.Context, gameID int64, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Move(ctx, gameID, to)
}

// RemoveGame drops the game with the given id and forgets its uploads so
// they can be imported again.
func (s *Service) RemoveGame(ctx context.Context, gameID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := s.store.Get(ctx, gameID)
	if err != nil {
		return err
	}
	if err := s.store.Remove(ctx, gameID); err != nil {
		return err
	}
	for _, r := range game.Replays() {
		if key, ok := s.digest(r.File()); ok {
			s.deduper.Unrecord(ctx, key)
		}
	}
	s.logger.Info(ctx, "game removed", logger.Int64("game", gameID))
	return nil
}

// place must be called with s.mu held.
func (s *Service) place(ctx context.Context, file match.File, rec recording.Recording) (Result, error) {
	if game, ok := s.store.FindMatching(ctx, rec); ok {
		replay, recErr := s.addTo(ctx, game, file, rec)
		s.store.Touch(ctx)
		return Result{
			Outcome:  OutcomeMerged,
			GameID:   game.ID(),
			ReplayID: replay.ID(),
			Dummy:    !replay.Success(),
			Err:      recErr,
		}, nil
	}

	replay, recErr := s.newReplay(ctx, file, rec)
	game := s.engine.NewGame(replay)
	if err := s.store.Append(ctx, game); err != nil {
		return Result{}, err
	}
	return Result{
		Outcome:  OutcomeNewGame,
		GameID:   game.ID(),
		ReplayID: replay.ID(),
		Dummy:    !replay.Success(),
		Err:      recErr,
	}, nil
}

// addTo adds rec to game, downgrading it to a dummy when its header is
// malformed. The returned error is the downgrade reason.
func (s *Service) addTo(ctx context.Context, game *match.Game, file match.File, rec recording.Recording) (*match.Replay, error) {
	replay, err := game.AddRecording(file, rec)
	if err == nil {
		return replay, nil
	}
	s.malformed(ctx, file, err)
	replay, _ = game.AddRecording(file, &recording.Dummy{TS: rec.Timestamp()})
	return replay, err
}

func (s *Service) newReplay(ctx context.Context, file match.File, rec recording.Recording) (*match.Replay, error) {
	replay, err := s.engine.NewReplay(file, rec)
	if err == nil {
		return replay, nil
	}
	s.malformed(ctx, file, err)
	replay, _ = s.engine.NewReplay(file, &recording.Dummy{TS: rec.Timestamp()})
	return replay, err
}

func (s *Service) malformed(ctx context.Context, file match.File, err error) {
	if errors.Is(err, match.ErrMalformedHeader) {
		s.metrics.RecordMalformedHeader()
	}
	s.logger.Warn(ctx, "recording header unusable, keeping file as dummy",
		logger.String("file", file.Name), logger.Error(err))
}

func (s *Service) finish(ctx context.Context, file match.File, res Result, start time.Time) {
	s.metrics.RecordImported(metrics.Outcome(res.Outcome))
	if res.Dummy {
		s.metrics.RecordDummy()
	}
	s.metrics.RecordImportLatency(float64(time.Since(start)) / float64(time.Millisecond))
	s.logger.Info(ctx, "recording imported",
		logger.String("file", file.Name),
		logger.String("outcome", string(res.Outcome)),
		logger.Int64("game", res.GameID),
		logger.Int64("replay", res.ReplayID),
		logger.Bool("dummy", res.Dummy),
	)
}

// digest keys an upload by its bytes. Files without content are never
// treated as duplicates.
func (s *Service) digest(file match.File) (string, bool) {
	if len(file.Data) == 0 {
		return "", false
	}
	return dedupe.Digest(file.Data), true
}
